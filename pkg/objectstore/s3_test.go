package objectstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bookden/bookden/pkg/api"
)

// stubS3 records the inputs of the last call instead of talking to a bucket.
type stubS3 struct {
	putInput    *s3.PutObjectInput
	deleteInput *s3.DeleteObjectInput
	err         error
}

func (s *stubS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.putInput = params
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func (s *stubS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.deleteInput = params
	if s.err != nil {
		return nil, s.err
	}
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStore(stub *stubS3) *Store {
	return &Store{
		client: stub,
		bucket: "covers",
		base:   "https://images.example.com",
	}
}

func TestDecodeDataURI(t *testing.T) {
	contentType, data, err := decodeDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decoding valid URI: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}
	if string(data) != "hello" {
		t.Errorf("payload = %q, want %q", data, "hello")
	}
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	uris := []string{
		"",
		"not a data uri",
		"data:image/png;base64",       // no comma
		"data:image/png,aGVsbG8=",     // no base64 marker
		"data:text/plain;base64,eA==", // not an image
		"data:image/png;base64,%%%",   // bad base64
		"data:image/png;base64,",      // empty payload
	}
	for _, uri := range uris {
		_, _, err := decodeDataURI(uri)
		var apiErr *api.APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("decodeDataURI(%q): err = %v, want a validation APIError", uri, err)
			continue
		}
		if apiErr.Type != api.ErrorTypeInvalidRequest {
			t.Errorf("decodeDataURI(%q): error type = %q, want %q", uri, apiErr.Type, api.ErrorTypeInvalidRequest)
		}
	}
}

func TestUpload(t *testing.T) {
	stub := &stubS3{}
	store := newTestStore(stub)

	url, err := store.Upload(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("uploading: %v", err)
	}

	if !strings.HasPrefix(url, "https://images.example.com/covers/") {
		t.Errorf("url = %q, want the public base prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, want a .jpg extension for image/jpeg", url)
	}
	if stub.putInput == nil {
		t.Fatal("PutObject was not called")
	}
	if got := *stub.putInput.Bucket; got != "covers" {
		t.Errorf("bucket = %q, want covers", got)
	}
	if got := *stub.putInput.ContentType; got != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", got)
	}

	// The URL key and the stored key must agree.
	key := strings.TrimPrefix(url, "https://images.example.com/")
	if *stub.putInput.Key != key {
		t.Errorf("stored key %q does not match URL key %q", *stub.putInput.Key, key)
	}
}

func TestUpload_RejectsNonDataURI(t *testing.T) {
	stub := &stubS3{}
	store := newTestStore(stub)

	if _, err := store.Upload(context.Background(), "https://example.com/image.png"); err == nil {
		t.Error("expected error for a non data URI")
	}
	if stub.putInput != nil {
		t.Error("PutObject called for invalid input")
	}
}

func TestDelete(t *testing.T) {
	stub := &stubS3{}
	store := newTestStore(stub)

	err := store.Delete(context.Background(), "https://images.example.com/covers/2026/08/31/abc.png")
	if err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if stub.deleteInput == nil {
		t.Fatal("DeleteObject was not called")
	}
	if got := *stub.deleteInput.Key; got != "covers/2026/08/31/abc.png" {
		t.Errorf("key = %q, want the URL path without the base", got)
	}
}

func TestDelete_ForeignURL(t *testing.T) {
	stub := &stubS3{}
	store := newTestStore(stub)

	if err := store.Delete(context.Background(), "https://elsewhere.example.com/x.png"); err == nil {
		t.Error("expected error for a foreign URL")
	}
	if stub.deleteInput != nil {
		t.Error("DeleteObject called for a foreign URL")
	}
}

func TestOwns(t *testing.T) {
	store := newTestStore(&stubS3{})

	if !store.Owns("https://images.example.com/covers/a.png") {
		t.Error("Owns rejected a URL under the public base")
	}
	if store.Owns("https://api.dicebear.com/9.x/thumbs/svg?seed=alice") {
		t.Error("Owns accepted a foreign URL")
	}
	if store.Owns("https://images.example.com.evil.com/a.png") {
		t.Error("Owns accepted a prefix-spoofed host")
	}
}

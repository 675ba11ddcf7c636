package api

import "time"

// User is a registered identity. PasswordHash is never serialized and
// is only populated by store methods that explicitly include it
// (the login lookup); everywhere else it is the zero value.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile returns the public view of the user: the fields safe to
// return in API responses.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// UserProfile is the public subset of a User returned by the
// registration and login endpoints.
type UserProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

// Book is a single recommendation record. UserID is set once at
// creation and never changes; ownership does not transfer.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Rating    int       `json:"rating"`
	Image     string    `json:"image"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookOwner is the denormalized owner information attached to each
// entry of the paginated listing.
type BookOwner struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// ListedBook is a book annotated with its owner for the public feed.
type ListedBook struct {
	Book
	Owner BookOwner `json:"owner"`
}

// BookPage is the pagination envelope for GET /books. TotalPages is
// computed from an independent total count, never from the length of
// the returned page.
type BookPage struct {
	Books       []ListedBook `json:"books"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateBookRequest is the body of POST /books. Image is a base64
// data URI; the server uploads it to object storage and stores the
// resulting durable URL on the book.
type CreateBookRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	Rating  int    `json:"rating"`
}

// AuthResponse is returned by registration and login: a bearer token
// plus the public user fields.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// Confirmation is a minimal acknowledgement body.
type Confirmation struct {
	Message string `json:"message"`
}

package model

// SignUpRequest is used for both sign-up and profile update.
type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,emailaddr"`
	Password  string `json:"password" validate:"required,nefield=Email,min=8,hasupper,haslower,hasdigit"`
	RPassword string `json:"rpassword" validate:"required,eqfield=Password"`
}

type UpdateProfileRequest = SignUpRequest

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PostRequest struct {
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Published string `json:"published" validate:"required,oneof=published draft"`
	Excerpt   string `json:"excerpt" validate:"required"`
	Thumbnail string `json:"thumbnail"`
}

type CommentRequest struct {
	Text   string `json:"text" validate:"required"`
	PostID string `json:"postId" validate:"required"`
}

type CommentUpdateRequest struct {
	Text string `json:"text" validate:"required"`
}

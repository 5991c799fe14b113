package shared

type CreateEmailVerificationRequest struct {
	Email string `json:"email"`
}

type CreateEmailVerificationResponse struct {
	HasAccount bool `json:"hasAccount"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Pin      string `json:"pin"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	UserId    string `json:"userId"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	AvatarUrl string `json:"avatarUrl"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarUrl *string `json:"avatarUrl,omitempty"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
}

type CreatePostRequest struct {
	Body string `json:"body"`
}

type UpdatePostRequest struct {
	Body string `json:"body"`
}

type ListPostsResponse struct {
	Posts []*Post `json:"posts"`
	Total int     `json:"total"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type UpdateCommentRequest struct {
	Body string `json:"body"`
}

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
	Total    int        `json:"total"`
}

type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Category    string `json:"category"`
}

type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"priceCents,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type UpdateProductStatusRequest struct {
	Status ProductStatus `json:"status"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
}

type CreateRoomRequest struct {
	Name            string `json:"name"`
	MaxParticipants int    `json:"maxParticipants"`
}

type UpdateRoomRequest struct {
	Name            *string `json:"name,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
}

type ListRoomsResponse struct {
	Rooms []*VideoRoom `json:"rooms"`
	Total int          `json:"total"`
}

package playlistdto

type CreatePlaylistInput struct {
	Name        string `json:"name" validate:"required,max=150,no_xss"`
	Description string `json:"description" validate:"required,max=2000,no_xss"`
}

// UpdatePlaylistInput needs at least one field.
type UpdatePlaylistInput struct {
	Name        string `json:"name" validate:"required_without=Description,max=150,no_xss"`
	Description string `json:"description" validate:"required_without=Name,max=2000,no_xss"`
}

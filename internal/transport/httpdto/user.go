package httpdto

// AvatarResponse is returned after a successful avatar update.
type AvatarResponse struct {
	User    AvatarUserDTO `json:"user"`
	Message string        `json:"message"`
}

type AvatarUserDTO struct {
	AvatarURL string `json:"avatarURL"`
}

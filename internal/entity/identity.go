package entity

// Identity is the tagged variant behind "who is signed in". Display fields
// are read through accessors so callers never sniff struct shapes.
type Identity interface {
	DisplayName() string
	Email() string
	AvatarURL() string
}

// GoogleIdentity carries the profile returned by the Google userinfo
// endpoint.
type GoogleIdentity struct {
	Name    string
	Mail    string
	Picture string
}

func (g GoogleIdentity) DisplayName() string { return g.Name }
func (g GoogleIdentity) Email() string       { return g.Mail }
func (g GoogleIdentity) AvatarURL() string   { return g.Picture }

// StoreIdentity is backed by our own user record.
type StoreIdentity struct {
	User *User
}

func (s StoreIdentity) DisplayName() string { return s.User.FullName }
func (s StoreIdentity) Email() string       { return s.User.Email }

func (s StoreIdentity) AvatarURL() string {
	if s.User.AvatarURL == nil {
		return ""
	}
	return *s.User.AvatarURL
}

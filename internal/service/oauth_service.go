package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/memory"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	stateRepo  *memory.StateRepository
	googleConf *oauth2.Config
	jwtSecret  string
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	stateRepo *memory.StateRepository,
	clientID, clientSecret, redirectURL, jwtSecret string,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		stateRepo:  stateRepo,
		googleConf: conf,
		jwtSecret:  jwtSecret,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)
	s.stateRepo.Save(state)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, state, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	// The state must be one we issued, and it burns on first use.
	if !s.stateRepo.Consume(state) {
		return nil, errors.New("invalid oauth state")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	identity, providerUserId, err := fetchGoogleIdentity(token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := s.resolveAccount(ctx, uow, identity)
	if err != nil {
		return nil, err
	}

	userProvider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: providerUserId,
		AvatarURL:      identity.AvatarURL(),
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().SaveUserProvider(ctx, userProvider); err != nil {
		return nil, fmt.Errorf("failed to save provider info: %v", err)
	}

	if identity.AvatarURL() != "" {
		if err := uow.UserRepository().UpdateAvatar(ctx, user.Id, identity.AvatarURL()); err != nil {
			fmt.Printf("[WARN] Failed to sync avatar for %s: %v\n", user.Id, err)
		}
	}

	signedToken, err := signAccessToken(user, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User:        dto.NewUserProfileResponse(identity, user),
	}, nil
}

// resolveAccount maps an OAuth identity onto a user row: the live account
// if one exists, a reactivated soft-deleted one, or a freshly provisioned
// user. Reactivation must resolve to the restored row or fail; falling
// through to the create branch would collide on the email unique index.
func (s *oauthService) resolveAccount(ctx context.Context, uow unitofwork.UnitOfWork, identity entity.Identity) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: identity.Email()})
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// A previously deleted account signing back in through Google comes back
	// to life instead of colliding on the email unique index.
	deleted, err := uow.UserRepository().FindOneUnscoped(ctx, specification.ByEmail{Email: identity.Email()})
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		if err := uow.UserRepository().Restore(ctx, deleted.Id); err != nil {
			return nil, err
		}
		restored, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: identity.Email()})
		if err != nil {
			return nil, err
		}
		if restored == nil {
			return nil, fmt.Errorf("restored account %s not found", deleted.Id)
		}
		return restored, nil
	}

	newUser := &entity.User{
		Id:           uuid.New(),
		Email:        identity.Email(),
		FullName:     identity.DisplayName(),
		PasswordHash: nil,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().Create(ctx, newUser); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return newUser, nil
}

func fetchGoogleIdentity(accessToken string) (entity.GoogleIdentity, string, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return entity.GoogleIdentity{}, "", fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.GoogleIdentity{}, "", fmt.Errorf("failed reading response: %v", err)
	}

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return entity.GoogleIdentity{}, "", err
	}

	identity := entity.GoogleIdentity{
		Name:    googleUser.Name,
		Mail:    googleUser.Email,
		Picture: googleUser.Picture,
	}
	return identity, googleUser.ID, nil
}

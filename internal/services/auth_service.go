package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/NRodriguezT98/ryr-documentos/internal/config"
	"github.com/NRodriguezT98/ryr-documentos/internal/utils"
	"github.com/authorizerdev/authorizer-go"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie for the given roles and returns
// the authenticated actor.
func ValidateSession(cookie string, roles []string) (Actor, error) {
	if authClient == nil {
		return Actor{}, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return Actor{}, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return Actor{}, fmt.Errorf("session is not valid")
	}

	// Decode the user through the SDK's json tags (the GraphQL field names)
	raw, err := json.Marshal(res.User)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to decode session user: %w", err)
	}
	var user struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return Actor{}, fmt.Errorf("failed to decode session user: %w", err)
	}
	if user.ID == "" {
		return Actor{}, fmt.Errorf("session has no user")
	}

	actor := Actor{ID: user.ID, Email: user.Email, Roles: user.Roles}
	if len(actor.Roles) == 0 {
		actor.Roles = roles
	}
	return actor, nil
}

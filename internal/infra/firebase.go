// README: Firebase ID token verification guarding POST /api/itinerary.
package infra

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// RoleClaim is the custom claim holding a caller's plan tier.
const RoleClaim = "role"

// FirebaseToken is a caller of the itinerary API after its ID token has been
// checked. UID keys the caller's monthly itinerary allowance and rate-limit
// bucket; Role is the custom plan claim ("" when the account has none).
type FirebaseToken struct {
	UID    string
	Role   string
	Claims map[string]interface{}
}

// TokenVerifier turns the bearer token sent to /api/itinerary into a
// FirebaseToken. Implementations return an error for expired, revoked or
// foreign-project tokens; the middleware answers those with 401.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier connects to the Firebase project that issues ID tokens
// for itinerary API clients. projectID is required because the audience of
// every token is checked against it. credentialsFile may be empty, in which
// case application-default credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase: project id is required to verify itinerary API callers")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app for %s: %w", projectID, err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify itinerary caller token: %w", err)
	}
	return newFirebaseToken(token.UID, token.Claims), nil
}

func newFirebaseToken(uid string, claims map[string]interface{}) *FirebaseToken {
	return &FirebaseToken{UID: uid, Role: roleFromClaims(claims), Claims: claims}
}

// roleFromClaims reads RoleClaim, ignoring values that are not strings.
func roleFromClaims(claims map[string]interface{}) string {
	role, _ := claims[RoleClaim].(string)
	return role
}

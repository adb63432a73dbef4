package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *fbauth.Client
	projectID    string
)

// InitFirebase wires the Firebase Auth client used for Google sign-in.
// Credentials come from FIREBASE_CREDENTIALS_JSON (the raw JSON blob) or
// FIREBASE_CREDENTIALS_FILE.
func InitFirebase(ctx context.Context) error {
	projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID must be set")
	}

	var opt option.ClientOption
	if credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON"); credsJSON != "" {
		opt = option.WithCredentialsJSON([]byte(credsJSON))
	} else if credsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE"); credsFile != "" {
		opt = option.WithCredentialsFile(credsFile)
	} else {
		return fmt.Errorf("FIREBASE_CREDENTIALS_JSON or FIREBASE_CREDENTIALS_FILE must be set")
	}

	config := &firebase.Config{ProjectID: projectID}

	var err error
	firebaseApp, err = firebase.NewApp(ctx, config, opt)
	if err != nil {
		return fmt.Errorf("initializing Firebase app: %w", err)
	}

	firebaseAuth, err = firebaseApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("getting Firebase Auth client: %w", err)
	}
	return nil
}

// verifyFirebaseToken checks the ID token signature, revocation state and
// audience, and returns the verified token.
func verifyFirebaseToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}
	token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != projectID {
		return nil, fmt.Errorf("token audience mismatch: got %q", token.Audience)
	}
	return token, nil
}

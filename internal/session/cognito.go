package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	gocache "github.com/patrickmn/go-cache"
)

const sessionCacheKey = "session"

// refreshSkew renews tokens this long before their actual expiry so a token
// attached to a request cannot expire in flight.
const refreshSkew = 2 * time.Minute

// CognitoProvider implements Provider against an AWS Cognito user pool using
// USER_PASSWORD_AUTH, with REFRESH_TOKEN_AUTH renewal. Tokens live in a TTL
// cache backed by an owner-only session file, so a login in one process is
// visible to the next.
type CognitoProvider struct {
	client   *cip.Client
	clientID string
	cache    *gocache.Cache
	file     *tokenFile
	events   Events
}

// NewCognitoProvider builds a provider for the given region and app client.
// sessionFile overrides where the session is persisted; empty means the user
// config directory. A persisted session from an earlier process is resumed.
func NewCognitoProvider(ctx context.Context, region, clientID, sessionFile string) (*CognitoProvider, error) {
	if clientID == "" {
		return nil, fmt.Errorf("COGNITO_CLIENT_ID is required")
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load: %w", err)
	}
	file, err := newTokenFile(sessionFile)
	if err != nil {
		return nil, err
	}

	p := &CognitoProvider{
		client:   cip.NewFromConfig(cfg),
		clientID: clientID,
		cache:    gocache.New(gocache.NoExpiration, 5*time.Minute),
		file:     file,
	}
	if sess, err := file.load(); err == nil {
		p.cacheSet(*sess)
	}
	return p, nil
}

func (p *CognitoProvider) Events() *Events {
	return &p.events
}

func (p *CognitoProvider) Session(ctx context.Context) (*Session, error) {
	cached, ok := p.cache.Get(sessionCacheKey)
	if !ok {
		return nil, ErrNoSession
	}
	sess := cached.(Session)

	if time.Until(sess.ExpiresAt) > refreshSkew {
		return &sess, nil
	}
	if sess.RefreshToken == "" {
		p.ClearCache()
		return nil, ErrNoSession
	}

	refreshed, err := p.refresh(ctx, sess)
	if err != nil {
		p.ClearCache()
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	p.store(*refreshed)
	return refreshed, nil
}

func (p *CognitoProvider) CurrentUser(ctx context.Context) (*User, error) {
	sess, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}

	out, err := p.client.GetUser(ctx, &cip.GetUserInput{
		AccessToken: aws.String(sess.AccessToken),
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user := &User{Username: aws.ToString(out.Username)}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "email":
			user.Email = aws.ToString(attr.Value)
		case "sub":
			user.Sub = aws.ToString(attr.Value)
		}
	}
	return user, nil
}

func (p *CognitoProvider) SignIn(ctx context.Context, username, password string) error {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if out.AuthenticationResult == nil {
		return fmt.Errorf("sign in: challenge %s not supported", out.ChallengeName)
	}

	wasAuthed := p.authenticated()
	p.store(Session{
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
		ExpiresAt:    time.Now().Add(time.Duration(out.AuthenticationResult.ExpiresIn) * time.Second),
		Username:     username,
	})
	if !wasAuthed {
		p.events.Emit(true)
	}
	return nil
}

func (p *CognitoProvider) SignUp(ctx context.Context, username, password, email string) error {
	_, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return fmt.Errorf("confirm sign up: %w", err)
	}
	return nil
}

func (p *CognitoProvider) ResendConfirmation(ctx context.Context, username string) error {
	_, err := p.client.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
	})
	if err != nil {
		return fmt.Errorf("resend confirmation: %w", err)
	}
	return nil
}

func (p *CognitoProvider) SignOut(ctx context.Context) error {
	cached, ok := p.cache.Get(sessionCacheKey)
	if ok {
		sess := cached.(Session)
		if sess.AccessToken != "" {
			// Best effort: local teardown happens regardless.
			_, _ = p.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
				AccessToken: aws.String(sess.AccessToken),
			})
		}
	}
	p.ClearCache()
	return nil
}

func (p *CognitoProvider) ClearCache() {
	wasAuthed := p.authenticated()
	p.cache.Delete(sessionCacheKey)
	p.file.clear()
	if wasAuthed {
		p.events.Emit(false)
	}
}

func (p *CognitoProvider) refresh(ctx context.Context, sess Session) (*Session, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": sess.RefreshToken,
		},
	})
	if err != nil {
		return nil, err
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("refresh returned no tokens")
	}

	renewed := Session{
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(out.AuthenticationResult.ExpiresIn) * time.Second),
		Username:     sess.Username,
	}
	return &renewed, nil
}

func (p *CognitoProvider) store(sess Session) {
	p.cacheSet(sess)
	if err := p.file.save(sess); err != nil {
		log.Printf("[warn] operation=persist_session error=%v", err)
	}
}

func (p *CognitoProvider) cacheSet(sess Session) {
	ttl := time.Until(sess.ExpiresAt)
	if sess.RefreshToken != "" {
		// Keep the record past token expiry so the refresh flow can run.
		ttl = gocache.NoExpiration
	}
	p.cache.Set(sessionCacheKey, sess, ttl)
}

func (p *CognitoProvider) authenticated() bool {
	_, ok := p.cache.Get(sessionCacheKey)
	return ok
}

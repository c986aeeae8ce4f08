// Package session holds the authenticated merchant state as an explicit
// value threaded through handlers instead of process-wide globals. The
// manager resolves credentials against the merchants table, issues JWTs
// for the dashboard API and publishes sign-in/sign-out events on the
// application bus.
package session

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

// Bus topics.
const (
	TopicSignedIn  = "session:signed_in"
	TopicSignedOut = "session:signed_out"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email is already registered")
)

// Session identifies the signed-in merchant. The rest of the platform
// consumes it only as an opaque scoping value.
type Session struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Realname string `json:"realname"`
}

// Claims is the JWT payload of dashboard tokens.
type Claims struct {
	Email    string `json:"email"`
	Realname string `json:"realname"`
	jwt.RegisteredClaims
}

// Manager authenticates merchants and mints/parses tokens.
type Manager struct {
	gw     gateway.Client
	bus    EventBus.Bus
	secret []byte
	expiry time.Duration
}

func NewManager(gw gateway.Client, bus EventBus.Bus, secret string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{gw: gw, bus: bus, secret: []byte(secret), expiry: expiry}
}

// Register creates a merchant account with a bcrypt-hashed password.
func (m *Manager) Register(ctx context.Context, email, password, realname string) (*domain.Merchant, error) {
	var existing domain.Merchant
	found, err := m.gw.QueryMaybeOne(ctx, gateway.Spec{
		Table:   "merchants",
		Filters: []gateway.Filter{gateway.Eq("email", email)},
	}, &existing)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	merchant := domain.Merchant{
		ID:        common.UUID(),
		Email:     email,
		Password:  string(hash),
		Realname:  realname,
		Status:    "enabled",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := m.gw.Insert(ctx, "merchants", &merchant); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// SignIn verifies credentials, records last_login, publishes the
// signed-in event and returns the session with a fresh token.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, string, error) {
	var merchant domain.Merchant
	err := m.gw.QueryOne(ctx, gateway.Spec{
		Table:   "merchants",
		Filters: []gateway.Filter{gateway.Eq("email", email)},
	}, &merchant)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(merchant.Password), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}

	_, err = m.gw.Update(ctx, "merchants",
		map[string]interface{}{"last_login": time.Now()},
		gateway.Eq("id", merchant.ID))
	if err != nil {
		zap.S().Warnf("record last_login failed: %s", err.Error())
	}

	sess := &Session{UserID: merchant.ID, Email: merchant.Email, Realname: merchant.Realname}
	token, err := m.IssueToken(sess)
	if err != nil {
		return nil, "", err
	}
	if m.bus != nil {
		m.bus.Publish(TopicSignedIn, *sess)
	}
	return sess, token, nil
}

// SignOut publishes the signed-out event. Tokens are stateless, expiry
// does the revocation.
func (m *Manager) SignOut(sess Session) {
	if m.bus != nil {
		m.bus.Publish(TopicSignedOut, sess)
	}
}

// IssueToken mints a signed JWT for the session.
func (m *Manager) IssueToken(sess *Session) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    sess.Email,
		Realname: sess.Realname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken validates a token and rebuilds the session value.
func (m *Manager) ParseToken(tokenStr string) (*Session, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &Session{UserID: claims.Subject, Email: claims.Email, Realname: claims.Realname}, nil
}

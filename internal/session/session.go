package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
)

const tokenTTL = 24 * time.Hour

// Claims carried by admin API tokens.
type Claims struct {
	Username string `json:"usr"`
	Level    string `json:"lvl"`
	jwt.RegisteredClaims
}

// Manager holds the signed-in operator for this process and signs the
// tokens the admin API checks. Sign-in and sign-out both go through the
// change bus so catalog views refresh the same way they do for data edits.
type Manager struct {
	secret string

	mu      sync.RWMutex
	current *domain.SysOpr
}

func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// Login records opr as the current operator and announces the auth change.
func (m *Manager) Login(opr *domain.SysOpr) {
	m.mu.Lock()
	m.current = opr
	m.mu.Unlock()
	events.PublishAuthChanged(opr.Username)
}

// Logout clears the current operator and announces the auth change.
func (m *Manager) Logout() {
	m.mu.Lock()
	var username string
	if m.current != nil {
		username = m.current.Username
	}
	m.current = nil
	m.mu.Unlock()
	events.PublishAuthChanged(username)
}

// Current returns the signed-in operator, if any.
func (m *Manager) Current() (*domain.SysOpr, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	opr := *m.current
	return &opr, true
}

// IssueToken signs an admin API token for opr.
func (m *Manager) IssueToken(opr *domain.SysOpr) (string, error) {
	claims := Claims{
		Username: opr.Username,
		Level:    opr.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   opr.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies a token and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Secret exposes the signing key for the JWT middleware.
func (m *Manager) Secret() string {
	return m.secret
}

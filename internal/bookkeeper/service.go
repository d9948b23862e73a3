package bookkeeper

import (
	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/trading/model"
)

// Service owns the wallets of all users. It is a plain registry; the
// settlement coordinator decides when wallets are created and treats a
// creation collision as an invariant violation.
type Service struct {
	logger  *zap.Logger
	wallets map[model.UserID]*Wallet
}

// NewService creates an empty wallet registry.
func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger:  logger,
		wallets: make(map[model.UserID]*Wallet),
	}
}

// CreateWallet creates an empty wallet for userID. Creating a wallet
// for a user that already has one means a user id was reused: the
// in-memory state is corrupted and the process aborts.
func (s *Service) CreateWallet(userID model.UserID) *Wallet {
	if _, exists := s.wallets[userID]; exists {
		s.logger.Panic("wallet already exists for new user id",
			zap.Uint64("user_id", uint64(userID)))
	}
	w := NewWallet()
	s.wallets[userID] = w
	return w
}

// WalletFor returns the wallet of userID, or false if the user has no
// wallet.
func (s *Service) WalletFor(userID model.UserID) (*Wallet, bool) {
	w, ok := s.wallets[userID]
	return w, ok
}

// UserIDs returns every user with a wallet, in no particular order.
// Used by system-wide conservation checks in tests.
func (s *Service) UserIDs() []model.UserID {
	out := make([]model.UserID, 0, len(s.wallets))
	for id := range s.wallets {
		out = append(out, id)
	}
	return out
}

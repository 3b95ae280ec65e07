package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/btcbank/bankd/internal/core/ports"
)

// InfoService exposes the read-only chain-info calls that require no
// identity resolution and pass straight through to the daemon.
type InfoService interface {
	GetBlockCount(ctx context.Context) (int64, error)
	GetConnectionCount(ctx context.Context) (int64, error)
	GetDifficulty(ctx context.Context) (decimal.Decimal, error)
	GetInfo(ctx context.Context) (map[string]interface{}, error)
	ValidateAddress(ctx context.Context, address string) (map[string]interface{}, error)
	GetReceivedByAddress(ctx context.Context, address string, minConf int) (decimal.Decimal, error)
}

type infoService struct {
	daemon ports.DaemonGateway
}

func NewInfoService(daemon ports.DaemonGateway) InfoService {
	return &infoService{daemon}
}

func (s *infoService) GetBlockCount(ctx context.Context) (int64, error) {
	return s.daemon.GetBlockCount(ctx)
}

func (s *infoService) GetConnectionCount(ctx context.Context) (int64, error) {
	return s.daemon.GetConnectionCount(ctx)
}

func (s *infoService) GetDifficulty(ctx context.Context) (decimal.Decimal, error) {
	return s.daemon.GetDifficulty(ctx)
}

func (s *infoService) GetInfo(ctx context.Context) (map[string]interface{}, error) {
	return s.daemon.GetInfo(ctx)
}

func (s *infoService) ValidateAddress(
	ctx context.Context, address string,
) (map[string]interface{}, error) {
	return s.daemon.ValidateAddress(ctx, address)
}

func (s *infoService) GetReceivedByAddress(
	ctx context.Context, address string, minConf int,
) (decimal.Decimal, error) {
	return s.daemon.GetReceivedByAddress(ctx, address, minConf)
}

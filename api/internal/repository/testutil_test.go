package repository

import (
	"context"
	"testing"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupTestDB starts a postgres container and migrates every table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("walletwatch"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := postgres.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	return db
}

func fakeAddress() string {
	return common.BytesToAddress([]byte(gofakeit.LetterN(20))).Hex()
}

func fakeHash() string {
	return gofakeit.HexUint(256)
}

func createWallet(t *testing.T, db *gorm.DB, repos *Repositories) *domain.Wallets {
	t.Helper()
	wallet := &domain.Wallets{Address: fakeAddress(), Label: gofakeit.Word(), Balance: decimal.NewFromInt(1)}
	require.NoError(t, repos.Wallets.Create(db, wallet))
	return wallet
}

func fakeTransaction(walletID uint) domain.Transactions {
	return domain.Transactions{
		WalletID:    walletID,
		TxHash:      fakeHash(),
		BlockNumber: uint64(gofakeit.Uint32()),
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		FromAddress: fakeAddress(),
		ToAddress:   fakeAddress(),
		Value:       decimal.RequireFromString("0.5"),
		GasPrice:    decimal.NewFromInt(1_000_000_000),
		GasUsed:     21000,
		Status:      domain.TX_STATUS_SUCCESS,
	}
}

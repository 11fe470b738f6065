package service

import (
	"context"
	"errors"
	"time"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

// amountScale is the number of fractional digits a points amount may carry.
const amountScale = 2

// maxAmount is the largest value a DECIMAL(20,2) column holds.
var maxAmount = decimal.RequireFromString("999999999999999999.99")

// Ledger pairs every balance mutation with its transaction log entry. Its
// methods must run inside a unit of work opened by the caller.
type Ledger struct {
	accountRepo     repository.PointsAccountRepository
	transactionRepo repository.PointsTransactionRepository
}

func NewLedger(accountRepo repository.PointsAccountRepository,
	transactionRepo repository.PointsTransactionRepository) *Ledger {
	return &Ledger{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// Credit adds amount to the user's balance, opening the account on first use,
// and returns the new balance.
func (l *Ledger) Credit(ctx context.Context, userID int64, amount decimal.Decimal, txType model.PointsTxType,
	description string) (decimal.Decimal, error) {
	account, err := l.accountRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		account, err = l.openAccount(ctx, userID)
	}
	if err != nil {
		return decimal.Zero, dbError(err)
	}

	if err := l.accountRepo.IncreaseBalance(ctx, userID, amount); err != nil {
		return decimal.Zero, dbError(err)
	}

	if err := l.append(ctx, userID, amount, txType, description); err != nil {
		return decimal.Zero, dbError(err)
	}

	return account.Balance.Add(amount), nil
}

// Debit removes amount from the user's balance under a row lock and returns
// the remaining balance. A missing account has a zero balance.
func (l *Ledger) Debit(ctx context.Context, userID int64, amount decimal.Decimal, txType model.PointsTxType,
	description string) (decimal.Decimal, error) {
	account, err := l.accountRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return decimal.Zero, NewServiceError(constants.ErrCodeInsufficientBalance, ErrInsufficientFunds)
	}
	if err != nil {
		return decimal.Zero, dbError(err)
	}

	if account.Balance.LessThan(amount) {
		return decimal.Zero, NewServiceError(constants.ErrCodeInsufficientBalance, ErrInsufficientFunds)
	}

	err = l.accountRepo.DecreaseBalance(ctx, userID, amount)
	if errors.Is(err, repository.ErrInsufficientPoints) {
		return decimal.Zero, NewServiceError(constants.ErrCodeInsufficientBalance, ErrInsufficientFunds)
	}
	if err != nil {
		return decimal.Zero, dbError(err)
	}

	if err := l.append(ctx, userID, amount.Neg(), txType, description); err != nil {
		return decimal.Zero, dbError(err)
	}

	return account.Balance.Sub(amount), nil
}

func (l *Ledger) openAccount(ctx context.Context, userID int64) (*model.PointsAccount, error) {
	account := &model.PointsAccount{UserID: userID, Balance: decimal.Zero}

	err := l.accountRepo.Create(ctx, account)
	if errors.Is(err, repository.ErrAccountExists) {
		return l.accountRepo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (l *Ledger) append(ctx context.Context, userID int64, amount decimal.Decimal, txType model.PointsTxType,
	description string) error {
	return l.transactionRepo.Create(ctx, &model.PointsTransaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

// validateAmount rejects amounts that are not positive or that the ledger
// columns cannot store.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(amountScale)) || amount.GreaterThan(maxAmount) {
		return invalidInput(ErrInvalidAmount)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	requestKindCharge   = "charge"
	requestKindWithdraw = "withdraw"
)

type PointsService interface {
	ChargeBalance(ctx context.Context, cmd ChargeBalanceCommand) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, cmd DebitBalanceCommand) (decimal.Decimal, error)
	AdjustBalance(ctx context.Context, actor Actor, cmd AdjustBalanceCommand) (decimal.Decimal, error)
	GetBalance(ctx context.Context, userID int64) (BalanceResponse, error)
	ListTransactions(ctx context.Context, query ListTransactionsQuery) (TransactionsResponse, error)

	SubmitChargeRequest(ctx context.Context, cmd SubmitChargeRequestCommand) (model.PointChargeRequest, error)
	DecideChargeRequest(ctx context.Context, actor Actor, cmd DecideRequestCommand) (model.PointChargeRequest, error)
	ListChargeRequests(ctx context.Context, actor Actor, query ListRequestsQuery) ([]model.PointChargeRequest, error)

	SubmitWithdrawRequest(ctx context.Context, cmd SubmitWithdrawRequestCommand) (model.PointWithdrawRequest, error)
	DecideWithdrawRequest(ctx context.Context, actor Actor, cmd DecideRequestCommand) (model.PointWithdrawRequest, error)
	ListWithdrawRequests(ctx context.Context, actor Actor, query ListRequestsQuery) ([]model.PointWithdrawRequest, error)
}

type points struct {
	ledger          *Ledger
	accountRepo     repository.PointsAccountRepository
	transactionRepo repository.PointsTransactionRepository
	chargeRepo      repository.ChargeRequestRepository
	withdrawRepo    repository.WithdrawRequestRepository
	txManager       repository.TxManager
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewPointsService(ledger *Ledger, accountRepo repository.PointsAccountRepository,
	transactionRepo repository.PointsTransactionRepository, chargeRepo repository.ChargeRequestRepository,
	withdrawRepo repository.WithdrawRequestRepository, txManager repository.TxManager, metrics *metrics.Metrics,
	logger *zap.Logger) PointsService {
	return &points{
		ledger:          ledger,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		chargeRepo:      chargeRepo,
		withdrawRepo:    withdrawRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

func (p *points) ChargeBalance(ctx context.Context, cmd ChargeBalanceCommand) (decimal.Decimal, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		balance, err = p.ledger.Credit(ctx, cmd.UserID, cmd.Amount, cmd.Type, cmd.Description)
		return err
	})
	if err != nil {
		err = fromTxError(err)
		p.metrics.RecordPointsMutationError(string(cmd.Type), errorType(err))
		p.logger.Error("Failed to charge balance",
			zap.Int64("userID", cmd.UserID),
			zap.String("amount", cmd.Amount.String()),
			zap.Error(err))
		return decimal.Zero, err
	}

	p.metrics.RecordPointsMutation(string(cmd.Type))
	p.logger.Info("Balance charged",
		zap.Int64("userID", cmd.UserID),
		zap.String("type", string(cmd.Type)),
		zap.String("amount", cmd.Amount.String()),
		zap.String("balance", balance.String()))

	return balance, nil
}

func (p *points) DebitBalance(ctx context.Context, cmd DebitBalanceCommand) (decimal.Decimal, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		balance, err = p.ledger.Debit(ctx, cmd.UserID, cmd.Amount, model.PointsTxSpend, cmd.Description)
		return err
	})
	if err != nil {
		err = fromTxError(err)
		p.metrics.RecordPointsMutationError(string(model.PointsTxSpend), errorType(err))
		p.logger.Warn("Failed to debit balance",
			zap.Int64("userID", cmd.UserID),
			zap.String("amount", cmd.Amount.String()),
			zap.Error(err))
		return decimal.Zero, err
	}

	p.metrics.RecordPointsMutation(string(model.PointsTxSpend))
	p.logger.Info("Balance debited",
		zap.Int64("userID", cmd.UserID),
		zap.String("amount", cmd.Amount.String()),
		zap.String("balance", balance.String()))

	return balance, nil
}

func (p *points) AdjustBalance(ctx context.Context, actor Actor, cmd AdjustBalanceCommand) (decimal.Decimal, error) {
	if err := requireAdmin(actor); err != nil {
		return decimal.Zero, err
	}

	description := cmd.Description
	if description == "" {
		description = fmt.Sprintf("admin adjustment by #%d", actor.UserID)
	}

	return p.ChargeBalance(ctx, ChargeBalanceCommand{
		UserID:      cmd.UserID,
		Amount:      cmd.Amount,
		Type:        model.PointsTxAdminAdjust,
		Description: description,
	})
}

func (p *points) GetBalance(ctx context.Context, userID int64) (BalanceResponse, error) {
	account, err := p.accountRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return BalanceResponse{UserID: userID, Balance: decimal.Zero}, nil
	}

	if err != nil {
		p.logger.Error("Failed to get balance", zap.Int64("userID", userID), zap.Error(err))
		return BalanceResponse{}, dbError(err)
	}

	return BalanceResponse{UserID: userID, Balance: account.Balance}, nil
}

func (p *points) ListTransactions(ctx context.Context, query ListTransactionsQuery) (TransactionsResponse, error) {
	transactions, err := p.transactionRepo.ListByUserID(ctx, query.UserID, pageSize(query.Limit),
		pageOffset(query.Offset))
	if err != nil {
		p.logger.Error("Failed to list transactions", zap.Int64("userID", query.UserID), zap.Error(err))
		return TransactionsResponse{}, dbError(err)
	}

	total, err := p.transactionRepo.CountByUserID(ctx, query.UserID)
	if err != nil {
		p.logger.Error("Failed to count transactions", zap.Int64("userID", query.UserID), zap.Error(err))
		return TransactionsResponse{}, dbError(err)
	}

	return TransactionsResponse{Transactions: transactions, Total: total}, nil
}

func (p *points) SubmitChargeRequest(ctx context.Context, cmd SubmitChargeRequestCommand) (
	model.PointChargeRequest, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return model.PointChargeRequest{}, err
	}

	req := model.PointChargeRequest{
		UserID:      cmd.UserID,
		Amount:      cmd.Amount,
		Status:      model.RequestStatusPending,
		RequestedAt: time.Now(),
	}

	if err := p.chargeRepo.Create(ctx, &req); err != nil {
		p.logger.Error("Failed to create charge request", zap.Int64("userID", cmd.UserID), zap.Error(err))
		return model.PointChargeRequest{}, dbError(err)
	}

	p.logger.Info("Charge request submitted",
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", cmd.UserID),
		zap.String("amount", cmd.Amount.String()))

	return req, nil
}

func (p *points) DecideChargeRequest(ctx context.Context, actor Actor, cmd DecideRequestCommand) (
	model.PointChargeRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return model.PointChargeRequest{}, err
	}

	if !cmd.Decision.Decision() {
		return model.PointChargeRequest{}, invalidInput(ErrInvalidDecision)
	}

	var decided model.PointChargeRequest
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		req, err := p.chargeRepo.GetByID(ctx, cmd.RequestID)
		if errors.Is(err, repository.ErrChargeRequestNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if req.Status != model.RequestStatusPending {
			return NewServiceError(constants.ErrCodeAlreadyDecided, ErrRequestAlreadyDecided)
		}

		var approvedAt *time.Time
		if cmd.Decision == model.RequestStatusApproved {
			now := time.Now()
			approvedAt = &now
		}

		err = p.chargeRepo.Decide(ctx, req.ID, cmd.Decision, approvedAt)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewServiceError(constants.ErrCodeAlreadyDecided, ErrRequestAlreadyDecided)
		}
		if err != nil {
			return dbError(err)
		}

		if cmd.Decision == model.RequestStatusApproved {
			description := fmt.Sprintf("point charge request #%d", req.ID)
			if _, err := p.ledger.Credit(ctx, req.UserID, req.Amount, model.PointsTxCharge, description); err != nil {
				return err
			}
		}

		req.Status = cmd.Decision
		req.ApprovedAt = approvedAt
		decided = *req

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		p.logger.Warn("Failed to decide charge request",
			zap.Int64("requestID", cmd.RequestID),
			zap.String("decision", string(cmd.Decision)),
			zap.Error(err))
		return model.PointChargeRequest{}, err
	}

	p.metrics.RecordPointRequestDecided(requestKindCharge, string(cmd.Decision))
	if cmd.Decision == model.RequestStatusApproved {
		p.metrics.RecordPointsMutation(string(model.PointsTxCharge))
	}

	p.logger.Info("Charge request decided",
		zap.Int64("requestID", decided.ID),
		zap.Int64("userID", decided.UserID),
		zap.String("status", string(decided.Status)))

	return decided, nil
}

func (p *points) ListChargeRequests(ctx context.Context, actor Actor, query ListRequestsQuery) (
	[]model.PointChargeRequest, error) {
	if err := validateListRequests(actor, query); err != nil {
		return nil, err
	}

	requests, err := p.chargeRepo.ListByStatus(ctx, query.Status, pageSize(query.Limit), pageOffset(query.Offset))
	if err != nil {
		p.logger.Error("Failed to list charge requests", zap.Error(err))
		return nil, dbError(err)
	}

	return requests, nil
}

func (p *points) SubmitWithdrawRequest(ctx context.Context, cmd SubmitWithdrawRequestCommand) (
	model.PointWithdrawRequest, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return model.PointWithdrawRequest{}, err
	}

	bankName := strings.TrimSpace(cmd.BankName)
	accountNum := strings.TrimSpace(cmd.AccountNum)
	if bankName == "" || accountNum == "" {
		return model.PointWithdrawRequest{}, invalidInput(ErrMissingField)
	}

	balance, err := p.GetBalance(ctx, cmd.UserID)
	if err != nil {
		return model.PointWithdrawRequest{}, err
	}

	if balance.Balance.LessThan(cmd.Amount) {
		p.logger.Warn("Withdraw request exceeds balance",
			zap.Int64("userID", cmd.UserID),
			zap.String("amount", cmd.Amount.String()),
			zap.String("balance", balance.Balance.String()))
		return model.PointWithdrawRequest{}, NewServiceError(constants.ErrCodeInsufficientBalance, ErrInsufficientFunds)
	}

	req := model.PointWithdrawRequest{
		UserID:      cmd.UserID,
		Amount:      cmd.Amount,
		BankName:    bankName,
		AccountNum:  accountNum,
		Status:      model.RequestStatusPending,
		RequestedAt: time.Now(),
	}

	if err := p.withdrawRepo.Create(ctx, &req); err != nil {
		p.logger.Error("Failed to create withdraw request", zap.Int64("userID", cmd.UserID), zap.Error(err))
		return model.PointWithdrawRequest{}, dbError(err)
	}

	p.logger.Info("Withdraw request submitted",
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", cmd.UserID),
		zap.String("amount", cmd.Amount.String()))

	return req, nil
}

// DecideWithdrawRequest debits the balance on approval, re-checking funds
// under the account lock.
func (p *points) DecideWithdrawRequest(ctx context.Context, actor Actor, cmd DecideRequestCommand) (
	model.PointWithdrawRequest, error) {
	if err := requireAdmin(actor); err != nil {
		return model.PointWithdrawRequest{}, err
	}

	if !cmd.Decision.Decision() {
		return model.PointWithdrawRequest{}, invalidInput(ErrInvalidDecision)
	}

	var decided model.PointWithdrawRequest
	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		req, err := p.withdrawRepo.GetByID(ctx, cmd.RequestID)
		if errors.Is(err, repository.ErrWithdrawRequestNotFound) {
			return notFound(err)
		}
		if err != nil {
			return dbError(err)
		}

		if req.Status != model.RequestStatusPending {
			return NewServiceError(constants.ErrCodeAlreadyDecided, ErrRequestAlreadyDecided)
		}

		if cmd.Decision == model.RequestStatusApproved {
			description := fmt.Sprintf("withdraw request #%d to %s", req.ID, req.BankName)
			if _, err := p.ledger.Debit(ctx, req.UserID, req.Amount, model.PointsTxWithdraw, description); err != nil {
				return err
			}
		}

		processedAt := time.Now()
		err = p.withdrawRepo.Decide(ctx, req.ID, cmd.Decision, processedAt)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewServiceError(constants.ErrCodeAlreadyDecided, ErrRequestAlreadyDecided)
		}
		if err != nil {
			return dbError(err)
		}

		req.Status = cmd.Decision
		req.ProcessedAt = &processedAt
		decided = *req

		return nil
	})
	if err != nil {
		err = fromTxError(err)
		p.logger.Warn("Failed to decide withdraw request",
			zap.Int64("requestID", cmd.RequestID),
			zap.String("decision", string(cmd.Decision)),
			zap.Error(err))
		return model.PointWithdrawRequest{}, err
	}

	p.metrics.RecordPointRequestDecided(requestKindWithdraw, string(cmd.Decision))
	if cmd.Decision == model.RequestStatusApproved {
		p.metrics.RecordPointsMutation(string(model.PointsTxWithdraw))
	}

	p.logger.Info("Withdraw request decided",
		zap.Int64("requestID", decided.ID),
		zap.Int64("userID", decided.UserID),
		zap.String("status", string(decided.Status)))

	return decided, nil
}

func (p *points) ListWithdrawRequests(ctx context.Context, actor Actor, query ListRequestsQuery) (
	[]model.PointWithdrawRequest, error) {
	if err := validateListRequests(actor, query); err != nil {
		return nil, err
	}

	requests, err := p.withdrawRepo.ListByStatus(ctx, query.Status, pageSize(query.Limit), pageOffset(query.Offset))
	if err != nil {
		p.logger.Error("Failed to list withdraw requests", zap.Error(err))
		return nil, dbError(err)
	}

	return requests, nil
}

func validateListRequests(actor Actor, query ListRequestsQuery) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	switch query.Status {
	case "", model.RequestStatusPending, model.RequestStatusApproved, model.RequestStatusRejected:
		return nil
	}

	return invalidInput(ErrInvalidDecision)
}

func errorType(err error) string {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return ErrCodeDatabase
}

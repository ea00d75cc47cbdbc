package handler

import (
	"strconv"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/application/settlement"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles transfer API endpoints
type TransferHandler struct {
	BaseHandler
	settlements *settlement.SettlementService
	statuses    *settlement.StatusService
	queries     *settlement.QueryService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(
	settlements *settlement.SettlementService,
	statuses *settlement.StatusService,
	queries *settlement.QueryService,
) *TransferHandler {
	return &TransferHandler{settlements: settlements, statuses: statuses, queries: queries}
}

func (h *TransferHandler) transactionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Transaction id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Create settles a new transfer
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	serviceReq := settlement.CreateTransferRequest{
		Sender: transfer.Party{
			Name:        req.SenderName,
			Mobile:      req.SenderMobile,
			GovID:       req.SenderGovID,
			Address:     req.SenderAddress,
			Governorate: req.SenderGovernorate,
		},
		Receiver: transfer.Party{
			Name:        req.ReceiverName,
			Mobile:      req.ReceiverMobile,
			GovID:       req.ReceiverGovID,
			Address:     req.ReceiverAddress,
			Governorate: req.ReceiverGovernorate,
		},
		Amount:              req.Amount,
		BaseAmount:          req.BaseAmount,
		BenefitedAmount:     req.BenefitedAmount,
		Currency:            valueobject.Currency(req.Currency),
		BranchID:            req.BranchID,
		DestinationBranchID: req.DestinationBranchID,
		EmployeeID:          req.EmployeeID,
		EmployeeName:        req.EmployeeName,
	}
	if req.Date != nil {
		serviceReq.Date = *req.Date
	}

	txn, err := h.settlements.CreateTransfer(c.Request.Context(), serviceReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dto.NewTransactionResponse(txn))
}

// Get returns a transaction by id
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	txn, err := h.queries.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewTransactionResponse(txn))
}

// List lists transactions with filtering
func (h *TransferHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := transfer.TransactionFilter{Filter: req.ToFilter()}
	if raw := c.Query("branch_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, "branch_id must be an integer")
			return
		}
		filter.BranchID = &id
	}
	if raw := c.Query("destination_branch_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, "destination_branch_id must be an integer")
			return
		}
		filter.DestinationBranchID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := transfer.Status(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown transaction status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("is_received"); raw != "" {
		received, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "is_received must be a boolean")
			return
		}
		filter.IsReceived = &received
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "date_from must be RFC3339")
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "date_to must be RFC3339")
			return
		}
		filter.DateTo = &to
	}

	page, err := h.queries.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewTransactionResponseList(page.Items), page.Total, page.Page, page.PageSize)
}

// UpdateStatus transitions a transaction to a new status
func (h *TransferHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	txn, err := h.statuses.UpdateStatus(c.Request.Context(), id, transfer.Status(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewTransactionResponse(txn))
}

// MarkReceived confirms receipt of a transfer
func (h *TransferHandler) MarkReceived(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	var req dto.MarkReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	txn, err := h.statuses.MarkReceived(c.Request.Context(), settlement.MarkReceivedRequest{
		TransactionID: id,
		Receiver: transfer.Party{
			Name:        req.ReceiverName,
			Mobile:      req.ReceiverMobile,
			GovID:       req.ReceiverGovID,
			Address:     req.ReceiverAddress,
			Governorate: req.ReceiverGovernorate,
		},
		ReceivedBy: req.ReceivedBy,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewTransactionResponse(txn))
}

// Profits lists the profit rows recognized for a transaction
func (h *TransferHandler) Profits(c *gin.Context) {
	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	rows, err := h.queries.GetTransactionProfits(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewProfitRowResponseList(rows))
}

// ProfitSummary aggregates a branch's recognized profit over a date range
func (h *TransferHandler) ProfitSummary(c *gin.Context) {
	branchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Branch id must be an integer")
		return
	}

	var from, to time.Time
	if raw := c.Query("date_from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			h.BadRequest(c, "date_from must be RFC3339")
			return
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			h.BadRequest(c, "date_to must be RFC3339")
			return
		}
	}

	summary, err := h.queries.GetProfitSummary(c.Request.Context(), branchID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewProfitSummaryResponse(summary))
}

package handler

import (
	"strconv"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/application/settlement"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BranchHandler handles branch and allocation API endpoints
type BranchHandler struct {
	BaseHandler
	branches    *settlement.BranchService
	allocations *settlement.AllocationService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branches *settlement.BranchService, allocations *settlement.AllocationService) *BranchHandler {
	return &BranchHandler{branches: branches, allocations: allocations}
}

func (h *BranchHandler) branchID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Branch id must be an integer")
		return 0, false
	}
	return id, true
}

// Create registers a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branch, err := h.branches.CreateBranch(c.Request.Context(), settlement.CreateBranchRequest{
		Code:        req.Code,
		Name:        req.Name,
		Location:    req.Location,
		Governorate: req.Governorate,
		TaxRate:     decimal.NewFromFloat(req.TaxRate),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dto.NewBranchResponse(branch))
}

// Get returns a branch by id
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := h.branchID(c)
	if !ok {
		return
	}

	branch, err := h.branches.GetBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewBranchResponse(branch))
}

// List lists branches with pagination
func (h *BranchHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	page, err := h.branches.ListBranches(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewBranchResponseList(page.Items), page.Total, page.Page, page.PageSize)
}

// SetTaxRate updates a branch's tax rate
func (h *BranchHandler) SetTaxRate(c *gin.Context) {
	id, ok := h.branchID(c)
	if !ok {
		return
	}

	var req dto.SetTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branch, err := h.branches.SetTaxRate(c.Request.Context(), id, decimal.NewFromFloat(req.TaxRate))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewBranchResponse(branch))
}

// AllocateFunds directly adjusts a branch's balance (director only)
func (h *BranchHandler) AllocateFunds(c *gin.Context) {
	id, ok := h.branchID(c)
	if !ok {
		return
	}

	var req dto.AllocateFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branch, err := h.allocations.AllocateFunds(c.Request.Context(), settlement.AllocateFundsRequest{
		BranchID:    id,
		Amount:      req.Amount,
		EntryType:   ledger.FundEntryType(req.Type),
		Currency:    valueobject.Currency(req.Currency),
		Description: req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewBranchResponse(branch))
}

// ResetAllocation zeroes a branch's balances with compensating audit
// entries (director only). The optional currency query parameter restricts
// the reset to one ledger currency.
func (h *BranchHandler) ResetAllocation(c *gin.Context) {
	id, ok := h.branchID(c)
	if !ok {
		return
	}

	var currency *valueobject.Currency
	if raw := c.Query("currency"); raw != "" {
		parsed := valueobject.Currency(raw)
		currency = &parsed
	}

	branch, err := h.allocations.ResetAllocation(c.Request.Context(), id, currency)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewBranchResponse(branch))
}

// FundsHistory lists a branch's audit trail
func (h *BranchHandler) FundsHistory(c *gin.Context) {
	id, ok := h.branchID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter := req.ToFilter()

	page, err := h.branches.FundsHistory(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewFundEntryResponseList(page.Items), page.Total, page.Page, page.PageSize)
}

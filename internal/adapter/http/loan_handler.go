package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"koperasi-core/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	MemberID   string  `json:"member_id" validate:"required,hex32"`
	MemberName string  `json:"member_name"`
	Principal  float64 `json:"principal" validate:"required,gt=0,intlike"`
	RatePct    float64 `json:"rate_pct" validate:"gte=0,dec2"`
	TermMonths int     `json:"term_months" validate:"required,gt=0,lte=360"`
	Fees       float64 `json:"fees" validate:"gte=0,intlike"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type approveLoanReq struct {
	ApprovedBy       string `json:"approved_by" validate:"required,hex32"`
	DisbursementDate string `json:"disbursement_date"`
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req approveLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := loan.ApproveInput{ApprovedBy: req.ApprovedBy}
	if req.DisbursementDate != "" {
		d, err := time.Parse("2006-01-02", req.DisbursementDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "disbursement_date must be YYYY-MM-DD"})
		}
		in.DisbursementDate = d
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DefaultLoan(c echo.Context) error {
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type payLoanReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	PaidAt string  `json:"paid_at"`
	Actor  string  `json:"actor"`
}

func (h *LoanHandler) PayLoan(c echo.Context) error {
	var req payLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := loan.PayInput{Amount: req.Amount, Actor: req.Actor}
	if req.PaidAt != "" {
		d, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "paid_at must be YYYY-MM-DD"})
		}
		in.PaidAt = d
	}
	dto, err := h.uc.Pay(c.Request().Context(), c.Param("loan_id"), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	dto, err := h.uc.GetSchedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type simulateReq struct {
	Principal  float64 `json:"principal" validate:"required,gt=0,intlike"`
	RatePct    float64 `json:"rate_pct" validate:"gte=0,dec2"`
	TermMonths int     `json:"term_months" validate:"required,gt=0,lte=360"`
	Fees       float64 `json:"fees" validate:"gte=0,intlike"`
	StartDate  string  `json:"start_date"`
}

func (h *LoanHandler) Simulate(c echo.Context) error {
	var req simulateReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := loan.SimulateInput{
		Principal:  req.Principal,
		RatePct:    req.RatePct,
		TermMonths: req.TermMonths,
		Fees:       req.Fees,
	}
	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
		}
		in.StartDate = d
	}
	dto, err := h.uc.Simulate(c.Request().Context(), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"koperasi-core/internal/usecase/ledger"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type journalLineReq struct {
	AccountCode string  `json:"account_code" validate:"required"`
	Debit       float64 `json:"debit" validate:"gte=0,dec2"`
	Credit      float64 `json:"credit" validate:"gte=0,dec2"`
}

type createEntryReq struct {
	EntryDate   string           `json:"entry_date" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Reference   string           `json:"reference"`
	Actor       string           `json:"actor"`
	AutoPost    bool             `json:"auto_post"`
	Lines       []journalLineReq `json:"lines" validate:"required,min=2,dive"`
}

func (h *LedgerHandler) CreateEntry(c echo.Context) error {
	var req createEntryReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	date, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "entry_date must be YYYY-MM-DD"})
	}

	in := ledger.RecordInput{
		EntryDate:   date,
		Description: req.Description,
		Reference:   req.Reference,
		Actor:       req.Actor,
		AutoPost:    req.AutoPost,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, ledger.LineInput{
			AccountCode: l.AccountCode,
			Debit:       decimal.NewFromFloat(l.Debit).Round(2),
			Credit:      decimal.NewFromFloat(l.Credit).Round(2),
		})
	}

	dto, err := h.uc.Record(c.Request().Context(), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) GetEntry(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("entry_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) PostEntry(c echo.Context) error {
	dto, err := h.uc.Post(c.Request().Context(), c.Param("entry_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reverseEntryReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *LedgerHandler) ReverseEntry(c echo.Context) error {
	var req reverseEntryReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reverse(c.Request().Context(), c.Param("entry_id"), req.Reason)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LedgerHandler) AccountLedger(c echo.Context) error {
	from, _, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, _, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}
	dto, err := h.uc.AccountLedger(c.Request().Context(), c.Param("code"), from, to)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LedgerHandler) TrialBalance(c echo.Context) error {
	asOf, set, err := parseDateParam(c, "as_of")
	if err != nil {
		return err
	}
	if !set {
		asOf = time.Now().UTC()
	}
	dto, err := h.uc.TrialBalance(c.Request().Context(), asOf)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

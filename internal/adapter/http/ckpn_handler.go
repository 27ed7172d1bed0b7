package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"koperasi-core/internal/usecase/ckpn"
)

type CKPNHandler struct{ svc *ckpn.Service }

func NewCKPNHandler(svc *ckpn.Service) *CKPNHandler { return &CKPNHandler{svc: svc} }

type runProvisionReq struct {
	// Period is the provisioning cut-off date, YYYY-MM-DD.
	Period string `json:"period" validate:"required"`
}

func (h *CKPNHandler) RunProvision(c echo.Context) error {
	var req runProvisionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	period, err := time.Parse("2006-01-02", req.Period)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "period must be YYYY-MM-DD"})
	}
	report, err := h.svc.RunMonthlyProvision(c.Request().Context(), period)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *CKPNHandler) GetLoanProvision(c echo.Context) error {
	asOf, set, err := parseDateParam(c, "as_of")
	if err != nil {
		return err
	}
	if !set {
		asOf = time.Now().UTC()
	}
	dto, err := h.svc.CalculateProvision(c.Request().Context(), c.Param("loan_id"), asOf)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

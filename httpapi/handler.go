package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unitconv"
	"unitconv/logging"
)

type ConvertRequest struct {
	// Amount is the raw text of the amount field. Empty means unset.
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type ConvertResponse struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
}

type UnitView struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

type GroupView struct {
	Category string     `json:"category"`
	Label    string     `json:"label"`
	Units    []UnitView `json:"units"`
}

type ConvertHandler struct {
	log      *logging.Logger
	catalog  *unitconv.Catalog
	decimals int
}

func NewConvertHandler(log *logging.Logger, catalog *unitconv.Catalog, decimals int) *ConvertHandler {
	return &ConvertHandler{
		log:      log.With("handler", "ConvertHandler"),
		catalog:  catalog,
		decimals: decimals,
	}
}

func (h *ConvertHandler) Catalog(c *gin.Context) {
	groups := h.catalog.Groups()
	out := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		view := GroupView{Category: string(g.Category), Label: g.Label}
		for _, u := range g.Units {
			view.Units = append(view.Units, UnitView{Name: u.Name, Factor: u.Factor})
		}
		out = append(out, view)
	}
	RespondOK(c, gin.H{"groups": out})
}

func (h *ConvertHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.catalog.ConvertString(req.Amount, req.From, req.To)
	if err != nil {
		h.log.Debug("conversion rejected", "from", req.From, "to", req.To, "error", err)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, unitconv.ErrMissingInput):
			status = http.StatusBadRequest
		case errors.Is(err, unitconv.ErrIncompatibleUnits), errors.Is(err, unitconv.ErrOutOfRange):
			status = http.StatusUnprocessableEntity
		}
		RespondError(c, status, unitconv.ErrorCode(err), err)
		return
	}
	RespondOK(c, ConvertResponse{
		Value:     res.Value,
		Formatted: unitconv.FormatValue(res.Value, h.decimals),
		Unit:      res.To.Name,
		Category:  string(res.Category),
	})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

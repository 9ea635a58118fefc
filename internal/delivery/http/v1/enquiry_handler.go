package v1

import (
	"net/http"

	"atlantic-drive-backend/internal/delivery/http/response"
	"atlantic-drive-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EnquiryHandler struct {
	submissionBinder
	enquiryUC domain.EnquiryUsecase
}

// NewEnquiryHandler registers the booking enquiry route (public, no auth required)
func NewEnquiryHandler(public *gin.RouterGroup, enquiryUC domain.EnquiryUsecase, binder submissionBinder) {
	handler := &EnquiryHandler{
		submissionBinder: binder,
		enquiryUC:        enquiryUC,
	}

	public.POST("/enquiry", handler.SubmitEnquiry)
}

// SubmitEnquiry godoc
// @Summary      Submit Booking Enquiry
// @Description  Request a tour or transfer. Executive / Corporate enquiries require companyWebsite; on any other service it is rejected as spam.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        enquiry  body      domain.EnquiryRequest  true  "Enquiry Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /enquiry [post]
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	var req domain.EnquiryRequest
	if !h.bind(c, domain.FlowEnquiry, &req) {
		return
	}

	if err := h.enquiryUC.SubmitEnquiry(c.Request.Context(), &req, h.meta(c)); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK)
}

package v1

import (
	"net/http"

	"atlantic-drive-backend/internal/delivery/http/response"
	"atlantic-drive-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	submissionBinder
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, binder submissionBinder) {
	handler := &ContactHandler{
		submissionBinder: binder,
		contactUC:        contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. Five submissions per client per hour, shared with /enquiry.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if !h.bind(c, domain.FlowContact, &req) {
		return
	}

	if err := h.contactUC.SubmitContact(c.Request.Context(), &req, h.meta(c)); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK)
}

package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
	"studyflow/pkg/response"
)

// Search godoc
// @Summary     Search knowledge items
// @Description Returns unarchived items matched by keyword substring and tag containment, most recently reviewed first.
// @Tags        Knowledge
// @Produce     json
// @Param       X-User-ID header string true  "User ID"
// @Param       type      query  string false "Item type filter (note/code/exercise/resource/any)"
// @Param       keywords  query  string false "Comma-separated keywords, OR-combined"
// @Param       category_id query string false "Category filter"
// @Param       limit     query  int    false "Max items (default: 5)"
// @Success     200 {object} searchResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/knowledge/search [GET]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	var req searchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.uc.Search(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "knowledge.http.Search: %v", err)
		response.Error(c, response.NewHTTPError(500, response.DefaultErrorMessage))
		return
	}

	response.OK(c, h.newSearchResp(items))
}

// CreateBundle godoc
// @Summary     Create knowledge categories and items
// @Description Creates categories (idempotent by name) and items in one call; failures are reported in the result body.
// @Tags        Knowledge
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "User ID"
// @Param       body      body   bundleReq true "Categories and items"
// @Success     200 {object} bundleResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/knowledge/bundle [POST]
func (h *handler) CreateBundle(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	var req bundleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result := h.uc.CreateBundle(ctx, sc, req.toInput())
	response.OK(c, h.newBundleResp(result))
}

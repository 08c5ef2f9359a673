package cookbook

import (
	"errors"
	"net/http"

	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜庫處理程序
type Handler struct {
	service *cookbook.Service
}

// NewHandler 創建新的食譜庫處理程序
func NewHandler(service *cookbook.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleParse 整理手寫的食譜名稱
func (h *Handler) HandleParse(c *gin.Context) {
	requestID := getRequestID(c)

	var req common.ParseRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response())
		return
	}

	name, err := h.service.ParseName(req.Input)
	if err != nil {
		common.LogDebug("食譜名稱無效",
			zap.String("input", req.Input),
			zap.String("request_id", requestID),
		)
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, common.ErrInvalidName.Response())
		return
	}

	c.JSON(http.StatusOK, common.ParseResponse{Msg: name})
}

// HandleCreateEntry 新增食材或食譜
func (h *Handler) HandleCreateEntry(c *gin.Context) {
	requestID := getRequestID(c)

	var req common.EntryRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response())
		return
	}

	if err := h.service.CreateEntry(c.Request.Context(), cookbook.NewEntryInput(req)); err != nil {
		_ = c.Error(err)
		if cookbook.IsRejected(err) {
			c.JSON(http.StatusBadRequest, common.NewEntryError(err).Response())
			return
		}
		common.LogError("Failed to create entry",
			zap.Error(err),
			zap.String("name", req.Name),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response())
		return
	}

	common.LogInfo("條目已新增",
		zap.String("name", req.Name),
		zap.String("type", req.Type),
		zap.String("request_id", requestID),
	)
	c.Status(http.StatusOK)
}

// HandleSummary 回傳食譜的烹飪時間與基礎食材
//
// 名稱不存在、不是食譜或展開失敗（循環、懸空引用、溢位）時回傳 400 與空 body。
func (h *Handler) HandleSummary(c *gin.Context) {
	requestID := getRequestID(c)
	name := c.Query("name")

	summary, err := h.service.Summarize(c.Request.Context(), name)
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, cookbook.ErrNotFound):
			common.LogDebug("食譜不存在",
				zap.String("name", name),
				zap.String("request_id", requestID),
			)
		case errors.Is(err, cookbook.ErrCyclicReference),
			errors.Is(err, cookbook.ErrDanglingReference),
			errors.Is(err, cookbook.ErrOverflow):
			common.LogWarn("食譜無法展開",
				zap.Error(err),
				zap.String("name", name),
				zap.String("request_id", requestID),
			)
		default:
			common.LogError("Failed to summarize recipe",
				zap.Error(err),
				zap.String("name", name),
				zap.String("request_id", requestID),
			)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func toSummaryResponse(s *cookbook.Summary) common.SummaryResponse {
	resp := common.SummaryResponse{
		Name:        s.Name,
		CookTime:    s.CookTime,
		Ingredients: make([]common.IngredientQuantity, len(s.Ingredients)),
	}
	for i, ing := range s.Ingredients {
		resp.Ingredients[i] = common.IngredientQuantity{Name: ing.Name, Quantity: ing.Quantity}
	}
	return resp
}

// getRequestID 取得請求 ID，沒有 requestid 中間件時自行生成
func getRequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}

package generate

import (
	"net/http"

	"codeberg.org/algrv/playground/internal/errors"
	"codeberg.org/algrv/playground/internal/generator"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Generate a component
// @Description Generate JSX and CSS from a prompt, the chat so far and the current code
// @Tags generate
// @Accept json
// @Produce json
// @Param request body Request true "Generation request"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/generate [post]
func Handler(componentGenerator ComponentGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		genReq := generator.Request{
			Prompt: req.Prompt,
			Chat:   toTurns(req.Chat),
		}

		if req.Code != nil {
			genReq.Code = *req.Code
		}

		result, err := componentGenerator.Generate(c.Request.Context(), genReq)
		if err != nil {
			errors.GenerationFailed(c, err)
			return
		}

		c.JSON(http.StatusOK, Response{
			JSX: result.JSX,
			CSS: result.CSS,
			Raw: result.Raw,
		})
	}
}

func toTurns(chat []ChatTurn) []generator.Turn {
	turns := make([]generator.Turn, 0, len(chat))

	for _, turn := range chat {
		content, ok := turn.Content.(string)
		if !ok {
			continue
		}

		turns = append(turns, generator.Turn{Role: turn.Role, Content: content})
	}

	return turns
}

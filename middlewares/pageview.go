package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"backend/entity"
	"backend/repository"
	"backend/utils"
)

// PageView records one telemetry row per authenticated request. Must
// run after AuthMiddleware. Insert failures are logged and ignored;
// telemetry never breaks a request.
func PageView(repo *repository.PageViewRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := utils.CurrentUserID(c); uid != 0 {
			view := entity.PageView{
				UserID:    uid,
				Path:      c.Request.URL.Path,
				ViewedAt:  time.Now().UTC(),
				IPAddress: c.ClientIP(),
			}
			if err := repo.Create(&view); err != nil {
				log.Printf("page view insert failed: %v", err)
			}
		}
		c.Next()
	}
}

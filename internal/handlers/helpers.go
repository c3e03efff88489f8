package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"nusacrm/internal/notify"
	"nusacrm/internal/session"
)

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func formInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.PostForm(key))
	return n
}

func formFloat(c *gin.Context, key string) float64 {
	f, _ := strconv.ParseFloat(c.PostForm(key), 64)
	return f
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// viewData merges the per-page data with what every page needs: the signed
// in user, their role and the drained notification queue.
func viewData(sess *session.Session, center *notify.Center, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = sess.User()
	data["Role"] = sess.Role()
	data["Flash"] = center.Drain()
	return data
}

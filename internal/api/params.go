package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/query"
)

// rawPage reads page and limit as given. Absent parameters stay nil.
func rawPage(c *gin.Context) query.RawPage {
	var p query.RawPage
	if v, ok := c.GetQuery("page"); ok {
		p.Page = &v
	}
	if v, ok := c.GetQuery("limit"); ok {
		p.Limit = &v
	}
	return p
}

// flag reads an optional boolean query parameter. Absent means false.
func flag(c *gin.Context, key string) (bool, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func pathID(c *gin.Context, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		badRequest(c, "Invalid "+key)
		return uuid.Nil, false
	}
	return id, true
}

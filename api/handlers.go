package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finaily/types"

	"github.com/gin-gonic/gin"
)

const (
	maxLimit     = 20
	defaultLimit = 10

	tokenKey = "token"
)

type handlers struct {
	fixtures *Fixtures
}

func language(c *gin.Context) (types.Language, bool) {
	lang := types.Language(c.DefaultQuery("lang", string(types.DefaultLanguage)))
	if !lang.Valid() {
		// validation failures carry a plain string detail
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("lang must be ko or en, got %q", lang)})
		return "", false
	}
	return lang, true
}

func (h *handlers) searchTickers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "q is required"})
		return
	}
	c.JSON(http.StatusOK, types.SearchResponse{Results: h.fixtures.Search(q)})
}

func (h *handlers) marketPulse(c *gin.Context) {
	lang, ok := language(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.fixtures.MarketPulse(lang))
}

func (h *handlers) news(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("limit must be between 1 and %d", maxLimit)})
		return
	}
	lang, ok := language(c)
	if !ok {
		return
	}

	resp, ok := h.fixtures.News(symbol, lang, limit)
	if !ok {
		abortWithDetail(c, http.StatusNotFound, "NO_NEWS", symbol+"에 대한 뉴스를 찾을 수 없습니다.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// requireBearer resolves the Authorization header to a known token
func (h *handlers) requireBearer(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		abortWithDetail(c, http.StatusUnauthorized, "UNAUTHORIZED", "로그인이 필요합니다.")
		return
	}
	if _, ok := h.fixtures.Profile(token); !ok {
		abortWithDetail(c, http.StatusUnauthorized, "INVALID_TOKEN", "유효하지 않은 인증 정보입니다.")
		return
	}
	c.Set(tokenKey, token)
	c.Next()
}

func (h *handlers) me(c *gin.Context) {
	p, _ := h.fixtures.Profile(c.GetString(tokenKey))
	c.JSON(http.StatusOK, p)
}

func (h *handlers) updateMe(c *gin.Context) {
	var u types.ProfileUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if u.PreferredLanguage != nil && !u.PreferredLanguage.Valid() {
		abortWithDetail(c, http.StatusUnprocessableEntity, "INVALID_LANGUAGE", "지원하지 않는 언어입니다.")
		return
	}
	p, _ := h.fixtures.UpdateProfile(c.GetString(tokenKey), u)
	c.JSON(http.StatusOK, p)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/interfaces/http/middleware"
	"f1-bets.backend/pkg/utils"
)

// FlexInt64 decodes a JSON number or a numeric string. Browser selects post ids as strings.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer", string(data))
	}
	*f = FlexInt64(n)
	return nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainerrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}

// requireID rejects a missing field
func requireID(name string, v *FlexInt64) (int64, error) {
	if v == nil {
		return 0, domainerrors.Validation(name + " is required")
	}
	return int64(*v), nil
}

// queryID parses a positive integer query parameter
func queryID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, domainerrors.Validation(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.Validation(name + " must be a positive integer")
	}
	return id, nil
}

func queryPagination(c *gin.Context) (utils.PaginationParams, error) {
	var p utils.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, domainerrors.Validation("page and limit must be integers")
	}
	return utils.GetPaginationParams(p.Page, p.Limit), nil
}

// authorizeCaller binds a bearer token, when present, to the user_id the client sent
func authorizeCaller(c *gin.Context, userID int64) error {
	tokenUserID, ok := middleware.GetUserID(c)
	if ok && tokenUserID != userID {
		return domainerrors.Unauthorized("token does not match user_id")
	}
	return nil
}

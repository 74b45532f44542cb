package httpserver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/util"
)

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(id), nil
}

// pageRequest reads page, linesPerPage, orderBy and direction. Page is 0-based.
func pageRequest(c echo.Context, defOrderBy, defDirection string) util.PageRequest {
	req := util.PageRequest{
		Page:      util.ParseIntDefault(c.QueryParam("page"), 0),
		Size:      util.ParseIntDefault(c.QueryParam("linesPerPage"), util.DefaultPageSize),
		OrderBy:   c.QueryParam("orderBy"),
		Direction: c.QueryParam("direction"),
	}
	return req.WithDefaults(defOrderBy, defDirection)
}

// idList parses a comma separated list such as "1,3,4".
func idList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out = append(out, uint(id))
	}
	return out, nil
}

func setLocation(c echo.Context, id uint) {
	path := strings.TrimSuffix(c.Request().URL.Path, "/")
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%d", path, id))
}

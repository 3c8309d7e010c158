package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/osbuild/archstrap/internal/blueprint"
	"github.com/osbuild/archstrap/internal/common"
	"github.com/osbuild/archstrap/internal/install"
	"github.com/osbuild/archstrap/internal/script"
)

type responseError struct {
	Code int    `json:"code,omitempty"`
	ID   string `json:"id"`
	Msg  string `json:"msg"`
}

func errorResponse(c echo.Context, code int, errors ...responseError) error {
	type reply struct {
		Status bool            `json:"status"`
		Errors []responseError `json:"errors,omitempty"`
	}

	return c.JSON(code, reply{false, errors})
}

func (s *Server) statusHandler(c echo.Context) error {
	type reply struct {
		API      uint     `json:"api"`
		Backend  string   `json:"backend"`
		Build    string   `json:"build"`
		Messages []string `json:"messages"`
	}

	return c.JSON(http.StatusOK, reply{
		API:      1,
		Backend:  "archstrap",
		Build:    common.BuildCommit,
		Messages: make([]string, 0),
	})
}

// formatForContentType picks the blueprint format from the request
// Content-Type. TOML is the default, matching the on-disk convention.
func formatForContentType(contentType string) blueprint.Format {
	mediatype, _, _ := strings.Cut(contentType, ";")
	switch strings.TrimSpace(mediatype) {
	case echo.MIMEApplicationJSON:
		return blueprint.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return blueprint.FormatYAML
	default:
		return blueprint.FormatTOML
	}
}

func (s *Server) composeHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, responseError{
			ID:  "BlueprintParseError",
			Msg: err.Error(),
		})
	}

	bp, err := blueprint.Decode(body, formatForContentType(c.Request().Header.Get(echo.HeaderContentType)))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, responseError{
			ID:  "BlueprintParseError",
			Msg: err.Error(),
		})
	}

	var diag install.Diagnostics
	plan, err := install.NewPlan(bp, s.zoneinfoDir, &diag)
	if err != nil {
		return configError(c, err)
	}

	text, err := script.Compile(plan)
	if err != nil {
		return configError(c, err)
	}

	type reply struct {
		ComposeID uuid.UUID         `json:"compose_id"`
		Script    string            `json:"script"`
		Warnings  []install.Warning `json:"warnings"`
	}

	warnings := diag.Warnings()
	if warnings == nil {
		warnings = make([]install.Warning, 0)
	}

	c.Logger().Infof("compiled install script for host %q", plan.Hostname)
	return c.JSON(http.StatusOK, reply{
		ComposeID: uuid.New(),
		Script:    text,
		Warnings:  warnings,
	})
}

// configError turns a fatal blueprint error into an error reply. Anything
// that is not an install.Error is unexpected and reported as such.
func configError(c echo.Context, err error) error {
	var ie *install.Error
	if errors.As(err, &ie) {
		return errorResponse(c, http.StatusBadRequest, responseError{
			ID:  ie.ID,
			Msg: ie.Msg,
		})
	}
	return errorResponse(c, http.StatusInternalServerError, responseError{
		ID:  "InternalError",
		Msg: err.Error(),
	})
}

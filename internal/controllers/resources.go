package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kickstarter-campaigns/internal/sections"
	"kickstarter-campaigns/internal/store"
	"kickstarter-campaigns/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Storage is the data access the resource handlers depend on.
type Storage interface {
	List(ctx context.Context, section sections.Section) (any, error)
	Find(ctx context.Context, section sections.Section, id int64) (any, error)
	Insert(ctx context.Context, record models.Record) (int64, error)
	Delete(ctx context.Context, section sections.Section, id int64) (int64, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// ResourceController serves /api/v1/:section for every known section.
type ResourceController struct {
	Store  Storage
	Logger *zap.Logger
}

func NewResourceController(s Storage, log *zap.Logger) ResourceController {
	if log == nil {
		log = zap.NewNop()
	}
	return ResourceController{Store: s, Logger: log}
}

func (rc ResourceController) section(c *gin.Context) (sections.Section, bool) {
	name := c.Param("section")
	s, err := sections.Parse(name)
	if err != nil {
		fail(c, rc.Logger, invalid("The section %s does not exist. The only sections are categories and campaigns.", name))
		return 0, false
	}
	return s, true
}

// List handles GET /api/v1/:section.
func (rc ResourceController) List(c *gin.Context) {
	section, ok := rc.section(c)
	if !ok {
		return
	}
	rows, err := rc.Store.List(c.Request.Context(), section)
	if err != nil {
		fail(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get handles GET /api/v1/:section/:id. An id that is not an integer can
// never match a row and is answered like any other unknown id.
func (rc ResourceController) Get(c *gin.Context) {
	section, ok := rc.section(c)
	if !ok {
		return
	}
	rawID := c.Param("id")
	missing := notFound("There is no item in the %s with an id of %s.", section, rawID)

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fail(c, rc.Logger, missing)
		return
	}
	row, err := rc.Store.Find(c.Request.Context(), section, id)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, rc.Logger, missing)
		return
	}
	if err != nil {
		fail(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Create handles POST /api/v1/:section.
func (rc ResourceController) Create(c *gin.Context) {
	section, ok := rc.section(c)
	if !ok {
		return
	}
	fields := readFields(c)
	required := section.RequiredFields()
	if field, missing := section.FirstMissing(fields); missing {
		fail(c, rc.Logger, invalid("Expected format: { %s }. You are missing the %s property.", strings.Join(required, ", "), field))
		return
	}

	record, err := section.NewRecord(fields)
	if errors.Is(err, sections.ErrNotInteger) {
		fail(c, rc.Logger, invalid("The category_id property must be an integer."))
		return
	}
	if err != nil {
		fail(c, rc.Logger, err)
		return
	}

	ctx := c.Request.Context()
	if campaign, isCampaign := record.(*models.Campaign); isCampaign {
		exists, err := rc.Store.CategoryExists(ctx, campaign.CategoryID)
		if err != nil {
			fail(c, rc.Logger, err)
			return
		}
		if !exists {
			fail(c, rc.Logger, missingCategory(campaign.CategoryID))
			return
		}
	}

	if _, err := rc.Store.Insert(ctx, record); err != nil {
		if campaign, isCampaign := record.(*models.Campaign); isCampaign && errors.Is(err, store.ErrMissingCategory) {
			err = missingCategory(campaign.CategoryID)
		}
		fail(c, rc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func missingCategory(id int64) error {
	return invalid("A category with an id of %d does not exist. You can only create campaigns in existing categories.", id)
}

// Delete handles DELETE /api/v1/:section. The id comes from the request body.
// Only campaigns can be deleted.
func (rc ResourceController) Delete(c *gin.Context) {
	section, ok := rc.section(c)
	if !ok {
		return
	}
	if !section.Deletable() {
		fail(c, rc.Logger, invalid("You cannot delete a %s. You can only delete an individual campaign.", section.Singular()))
		return
	}

	fields := readFields(c)
	if !fields.Has("id") {
		fail(c, rc.Logger, invalid("Expected format: { id }. You are missing the id property."))
		return
	}
	missing := notFound("There is no %s with an id of %s.", section.Singular(), fields.String("id"))
	id, err := fields.Int("id")
	if err != nil {
		fail(c, rc.Logger, missing)
		return
	}

	ctx := c.Request.Context()
	if _, err := rc.Store.Find(ctx, section, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = missing
		}
		fail(c, rc.Logger, err)
		return
	}
	affected, err := rc.Store.Delete(ctx, section, id)
	if err != nil {
		fail(c, rc.Logger, err)
		return
	}
	if affected == 0 {
		fail(c, rc.Logger, missing)
		return
	}
	c.JSON(http.StatusOK, id)
}

// readFields decodes the JSON body into Fields. A missing or malformed body
// yields no fields so the first required property is reported as missing.
func readFields(c *gin.Context) sections.Fields {
	fields := sections.Fields{}
	raw, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return fields
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return sections.Fields{}
	}
	return fields
}

// Home answers GET /.
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Oh hi, this is home!")
}

// NotFound answers every request no route matched.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404: Not found")
}

// Package handler implements the museum's HTTP API.
package handler

import (
	"github.com/osse101/BinhiHeritage_Go/internal/adoption"
	"github.com/osse101/BinhiHeritage_Go/internal/catalog"
	"github.com/osse101/BinhiHeritage_Go/internal/community"
	"github.com/osse101/BinhiHeritage_Go/internal/eventlog"
	"github.com/osse101/BinhiHeritage_Go/internal/guide"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/quest"
	"github.com/osse101/BinhiHeritage_Go/internal/share"
	"github.com/osse101/BinhiHeritage_Go/internal/transparency"
)

// Services are the dependencies of the API handlers
type Services struct {
	Catalog      catalog.Service
	Adoption     adoption.Service
	Profiles     profile.Service
	Quests       quest.Service
	Transparency transparency.Service
	Community    community.Service
	Activity     eventlog.Service
	Share        share.Service
	Guide        guide.Service
}

// Handlers serves the /api/v1 endpoints
type Handlers struct {
	catalog      catalog.Service
	adoption     adoption.Service
	profiles     profile.Service
	quests       quest.Service
	transparency transparency.Service
	community    community.Service
	activity     eventlog.Service
	share        share.Service
	guide        guide.Service
}

// NewHandlers creates the API handlers
func NewHandlers(s Services) *Handlers {
	return &Handlers{
		catalog:      s.Catalog,
		adoption:     s.Adoption,
		profiles:     s.Profiles,
		quests:       s.Quests,
		transparency: s.Transparency,
		community:    s.Community,
		activity:     s.Activity,
		share:        s.Share,
		guide:        s.Guide,
	}
}

//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	catalogmigrations "github.com/ghuser/stockroom/migrations/catalog"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/testutil/containers"
	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	domainevents "github.com/ghuser/stockroom/services/catalog/domain/events"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	"github.com/ghuser/stockroom/services/catalog/infrastructure/persistence/postgres"
)

type PostgresRepositorySuite struct {
	suite.Suite
	pg         *containers.PostgresContainer
	bus        *events.EventBus
	categories *postgres.CategoryRepository
	items      *postgres.ItemRepository
	ctx        context.Context
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T(), catalogmigrations.FS)

	log := logger.Nop()
	bus, err := events.NewEventBus(&config.Config{CatalogDatabaseURL: s.pg.URL, ServiceName: "stockroom-test"}, log)
	s.Require().NoError(err)
	s.Require().NoError(bus.InitTopics(domainevents.Topics()...))
	s.bus = bus

	db := database.New(s.pg.DB, log)
	s.categories = postgres.NewCategoryRepository(db, bus)
	s.items = postgres.NewItemRepository(db, bus)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.bus != nil {
		_ = s.bus.Close()
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "catalog.items", "catalog.categories"))
}

func (s *PostgresRepositorySuite) seedCategory(name string) *models.Category {
	c := models.NewCategory(name, "description of "+name)
	s.Require().NoError(s.categories.Save(s.ctx, c))
	return c
}

func (s *PostgresRepositorySuite) seedItem(name string, categoryID uuid.UUID) *models.Item {
	it := models.NewItem(models.ItemFields{Name: name, CategoryID: categoryID, NIS: 2})
	s.Require().NoError(s.items.Save(s.ctx, it))
	return it
}

// TestCategoryRoundTrip verifies stored categories come back intact and sorted.
func (s *PostgresRepositorySuite) TestCategoryRoundTrip() {
	tools := s.seedCategory("Tools")
	s.seedCategory("Adhesives")

	found, err := s.categories.GetByID(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Equal("Tools", found.Name)
	s.Equal("description of Tools", found.Description)

	byName, err := s.categories.FindByName(s.ctx, "Tools")
	s.Require().NoError(err)
	s.Equal(tools.ID, byName.ID)

	all, err := s.categories.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Adhesives", all[0].Name)

	_, err = s.categories.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, catalogdomain.ErrCategoryNotFound)
}

// TestCategoryUniqueName verifies the unique index maps to ErrCategoryNameTaken.
func (s *PostgresRepositorySuite) TestCategoryUniqueName() {
	s.seedCategory("Tools")
	paint := s.seedCategory("Paint")

	err := s.categories.Save(s.ctx, models.NewCategory("Tools", "second copy"))
	s.ErrorIs(err, catalogdomain.ErrCategoryNameTaken)

	paint.Name = "Tools"
	s.ErrorIs(s.categories.Replace(s.ctx, paint), catalogdomain.ErrCategoryNameTaken)
}

// TestItemRoundTrip verifies every item field survives storage.
func (s *PostgresRepositorySuite) TestItemRoundTrip() {
	tools := s.seedCategory("Tools")
	it := models.NewItem(models.ItemFields{
		Name:        "Hammer",
		Description: "Claw hammer",
		CategoryID:  tools.ID,
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		NIS:         7,
		DAdded:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(s.items.Save(s.ctx, it))

	found, err := s.items.GetByID(s.ctx, it.ID)
	s.Require().NoError(err)
	s.Equal("Hammer", found.Name)
	s.Equal("Claw hammer", found.Description)
	s.Equal(tools.ID, found.CategoryID)
	s.True(found.Price.Valid)
	s.True(found.Price.Decimal.Equal(decimal.RequireFromString("12.5")))
	s.Equal(int64(7), found.NIS)
	s.Equal("2024-03-01", found.DAddedYYYYMMDD())
}

// TestItemWithoutPrice verifies an absent price is stored as NULL.
func (s *PostgresRepositorySuite) TestItemWithoutPrice() {
	tools := s.seedCategory("Tools")
	it := s.seedItem("Nails", tools.ID)

	found, err := s.items.GetByID(s.ctx, it.ID)
	s.Require().NoError(err)
	s.False(found.Price.Valid)
}

// TestItemForeignKey verifies missing categories map to ErrCategoryMissing.
func (s *PostgresRepositorySuite) TestItemForeignKey() {
	orphan := models.NewItem(models.ItemFields{Name: "Orphan", CategoryID: uuid.New()})
	s.ErrorIs(s.items.Save(s.ctx, orphan), catalogdomain.ErrCategoryMissing)

	tools := s.seedCategory("Tools")
	it := s.seedItem("Hammer", tools.ID)
	it.CategoryID = uuid.New()
	s.ErrorIs(s.items.Replace(s.ctx, it), catalogdomain.ErrCategoryMissing)
}

// TestCategoryDelete verifies dependents block deletion and not-found is reported.
func (s *PostgresRepositorySuite) TestCategoryDelete() {
	tools := s.seedCategory("Tools")
	hammer := s.seedItem("Hammer", tools.ID)

	s.ErrorIs(s.categories.Delete(s.ctx, tools.ID), catalogdomain.ErrCategoryHasDependents)

	n, err := s.items.CountByCategory(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().NoError(s.items.Delete(s.ctx, hammer.ID))
	s.Require().NoError(s.categories.Delete(s.ctx, tools.ID))
	s.ErrorIs(s.categories.Delete(s.ctx, tools.ID), catalogdomain.ErrCategoryNotFound)
	s.ErrorIs(s.items.Delete(s.ctx, hammer.ID), catalogdomain.ErrItemNotFound)
}

// TestConcurrentDeleteAndInsert verifies no item is left pointing at a deleted category.
func (s *PostgresRepositorySuite) TestConcurrentDeleteAndInsert() {
	for range 20 {
		c := s.seedCategory("Race " + uuid.NewString())

		var (
			wg        sync.WaitGroup
			deleteErr error
			saveErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			deleteErr = s.categories.Delete(s.ctx, c.ID)
		}()
		go func() {
			defer wg.Done()
			saveErr = s.items.Save(s.ctx, models.NewItem(models.ItemFields{Name: "Racer", CategoryID: c.ID}))
		}()
		wg.Wait()

		if saveErr == nil {
			s.Require().ErrorIs(deleteErr, catalogdomain.ErrCategoryHasDependents)
		} else {
			s.Require().ErrorIs(saveErr, catalogdomain.ErrCategoryMissing)
			s.Require().NoError(deleteErr)
		}
	}
}

// TestOutboxPublishesOnCommit verifies a created item is delivered on its topic.
func (s *PostgresRepositorySuite) TestOutboxPublishesOnCommit() {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	tools := s.seedCategory("Tools")
	it := models.NewItem(models.ItemFields{Name: "Hammer", CategoryID: tools.ID, NIS: 1})

	received := make(chan domainevents.ItemEvent, 1)
	errCh, err := s.bus.Subscribe(ctx, domainevents.TopicItemCreated, func(_ context.Context, msg *message.Message) error {
		var evt domainevents.ItemEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		// earlier tests also published on this topic
		if evt.ItemID == it.ID {
			received <- evt
		}
		return nil
	})
	s.Require().NoError(err)
	go func() {
		for range errCh {
		}
	}()

	s.Require().NoError(s.items.Save(s.ctx, it))

	select {
	case evt := <-received:
		s.Equal(tools.ID, evt.CategoryID)
		s.Equal("Hammer", evt.Name)
		s.Equal(int64(1), evt.NIS)
	case <-ctx.Done():
		s.Fail("timed out waiting for item created event")
	}
}

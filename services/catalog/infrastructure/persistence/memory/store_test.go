package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogdomain "github.com/ghuser/stockroom/services/catalog/domain"
	"github.com/ghuser/stockroom/services/catalog/domain/models"
	"github.com/ghuser/stockroom/services/catalog/domain/repositories"
)

var (
	_ repositories.CategoryRepository = (*CategoryRepository)(nil)
	_ repositories.ItemRepository     = (*ItemRepository)(nil)
)

type StoreSuite struct {
	suite.Suite
	store      *Store
	categories *CategoryRepository
	items      *ItemRepository
	ctx        context.Context
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
	s.categories = s.store.Categories()
	s.items = s.store.Items()
	s.ctx = context.Background()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) seedCategory(name string) *models.Category {
	c := models.NewCategory(name, "description of "+name)
	s.Require().NoError(s.categories.Save(s.ctx, c))
	return c
}

func (s *StoreSuite) seedItem(name string, categoryID uuid.UUID) *models.Item {
	it := models.NewItem(models.ItemFields{Name: name, CategoryID: categoryID, NIS: 1})
	s.Require().NoError(s.items.Save(s.ctx, it))
	return it
}

// TestCategoryLookups verifies creation, lookup and ordering of categories.
func (s *StoreSuite) TestCategoryLookups() {
	s.Run("finds by id and name", func() {
		c := s.seedCategory("Tools")

		found, err := s.categories.GetByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Tools", found.Name)

		found, err = s.categories.FindByName(s.ctx, "Tools")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("name lookup is case-sensitive", func() {
		_, err := s.categories.FindByName(s.ctx, "tools")
		s.Require().ErrorIs(err, catalogdomain.ErrCategoryNotFound)
	})

	s.Run("unknown id", func() {
		_, err := s.categories.GetByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, catalogdomain.ErrCategoryNotFound)
	})

	s.Run("lists sorted by name", func() {
		s.seedCategory("Bolts")
		s.seedCategory("Adhesives")

		all, err := s.categories.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 3)
		s.Equal([]string{"Adhesives", "Bolts", "Tools"}, []string{all[0].Name, all[1].Name, all[2].Name})

		n, err := s.categories.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, n)
	})
}

// TestCategoryNameUniqueness verifies duplicate names are rejected on save and rename.
func (s *StoreSuite) TestCategoryNameUniqueness() {
	tools := s.seedCategory("Tools")
	paint := s.seedCategory("Paint")

	s.Run("rejects duplicate on save", func() {
		err := s.categories.Save(s.ctx, models.NewCategory("Tools", "again"))
		s.Require().ErrorIs(err, catalogdomain.ErrCategoryNameTaken)
	})

	s.Run("rejects rename onto another category", func() {
		renamed := *paint
		renamed.Name = "Tools"
		err := s.categories.Replace(s.ctx, &renamed)
		s.Require().ErrorIs(err, catalogdomain.ErrCategoryNameTaken)
	})

	s.Run("allows keeping its own name", func() {
		same := *tools
		same.Description = "new description"
		s.Require().NoError(s.categories.Replace(s.ctx, &same))

		found, err := s.categories.GetByID(s.ctx, tools.ID)
		s.Require().NoError(err)
		s.Equal("new description", found.Description)
		s.Equal(tools.CreatedAt, found.CreatedAt)
	})

	s.Run("replace of unknown id", func() {
		err := s.categories.Replace(s.ctx, models.NewCategory("Ghost", "nothing here"))
		s.Require().ErrorIs(err, catalogdomain.ErrCategoryNotFound)
	})
}

// TestItemIntegrity verifies items must reference an existing category.
func (s *StoreSuite) TestItemIntegrity() {
	tools := s.seedCategory("Tools")

	s.Run("rejects missing category on save", func() {
		it := models.NewItem(models.ItemFields{Name: "Orphan", CategoryID: uuid.New()})
		s.Require().ErrorIs(s.items.Save(s.ctx, it), catalogdomain.ErrCategoryMissing)
	})

	s.Run("rejects missing category on replace", func() {
		it := s.seedItem("Hammer", tools.ID)
		moved := *it
		moved.CategoryID = uuid.New()
		s.Require().ErrorIs(s.items.Replace(s.ctx, &moved), catalogdomain.ErrCategoryMissing)
	})

	s.Run("replace of unknown item", func() {
		it := models.NewItem(models.ItemFields{Name: "Ghost", CategoryID: tools.ID})
		s.Require().ErrorIs(s.items.Replace(s.ctx, it), catalogdomain.ErrItemNotFound)
	})
}

// TestItemQueries verifies listing, filtering and counting items.
func (s *StoreSuite) TestItemQueries() {
	tools := s.seedCategory("Tools")
	paint := s.seedCategory("Paint")
	s.seedItem("Saw", tools.ID)
	s.seedItem("Hammer", tools.ID)
	s.seedItem("Primer", paint.ID)

	all, err := s.items.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("Hammer", all[0].Name)

	inTools, err := s.items.FindByCategory(s.ctx, tools.ID)
	s.Require().NoError(err)
	s.Require().Len(inTools, 2)
	s.Equal([]string{"Hammer", "Saw"}, []string{inTools[0].Name, inTools[1].Name})

	n, err := s.items.CountByCategory(s.ctx, paint.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	none, err := s.items.FindByCategory(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(none)
}

// TestDeletes verifies the dependent check and not-found handling on delete.
func (s *StoreSuite) TestDeletes() {
	tools := s.seedCategory("Tools")
	hammer := s.seedItem("Hammer", tools.ID)

	s.Run("category with dependents is kept", func() {
		s.Require().ErrorIs(s.categories.Delete(s.ctx, tools.ID), catalogdomain.ErrCategoryHasDependents)
		_, err := s.categories.GetByID(s.ctx, tools.ID)
		s.Require().NoError(err)
	})

	s.Run("item delete then category delete", func() {
		s.Require().NoError(s.items.Delete(s.ctx, hammer.ID))
		s.Require().NoError(s.categories.Delete(s.ctx, tools.ID))
	})

	s.Run("second delete reports not found", func() {
		s.Require().ErrorIs(s.items.Delete(s.ctx, hammer.ID), catalogdomain.ErrItemNotFound)
		s.Require().ErrorIs(s.categories.Delete(s.ctx, tools.ID), catalogdomain.ErrCategoryNotFound)
	})
}

// TestReturnsCopies verifies callers cannot mutate stored state through results.
func (s *StoreSuite) TestReturnsCopies() {
	c := s.seedCategory("Tools")

	found, err := s.categories.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	found.Name = "Mutated"

	again, err := s.categories.GetByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Tools", again.Name)
}

// TestConcurrentDeleteAndInsert verifies a category is never deleted while an
// item referencing it is committed.
func (s *StoreSuite) TestConcurrentDeleteAndInsert() {
	for range 50 {
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
			it := models.NewItem(models.ItemFields{Name: "Racer", CategoryID: c.ID})
			saveErr = s.items.Save(s.ctx, it)
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

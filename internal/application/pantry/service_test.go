package pantry

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/despensa/v1/internal/infrastructure/persistence/memory"
	"github.com/despensa/v1/internal/ports/inbound"
	apperrors "github.com/despensa/v1/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type PantryServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service inbound.PantryService
	userID  uuid.UUID
}

func (s *PantryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.service = NewService(memory.NewStockRepository(), zap.NewNop())
	s.userID = uuid.New()
}

func (s *PantryServiceTestSuite) addItem(name string, qty float64, unit, category string) *inbound.ReconcileResult {
	result, err := s.service.AddItem(s.ctx, inbound.AddItemCommand{
		UserID: s.userID,
		Item: inbound.IncomingItemCommand{
			Name:     name,
			Quantity: qty,
			Unit:     unit,
			Category: category,
		},
	})
	s.Require().NoError(err)
	return result
}

func (s *PantryServiceTestSuite) TestAddItemCreatesAndPersists() {
	result := s.addItem("Tomates", 2, "kg", "vegetables")

	s.Equal(1, result.Created)
	s.Equal(0, result.Merged)
	s.Require().Len(result.Stock, 1)
	s.Equal("Tomates", result.Stock[0].Name)

	stock, err := s.service.ListStock(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(stock, 1)
	s.Equal(result.Stock[0].ID, stock[0].ID)
}

func (s *PantryServiceTestSuite) TestAddItemTopsUpExistingEntry() {
	s.addItem("Tomates", 2, "kg", "vegetables")
	result := s.addItem("Tomate", 500, "g", "vegetables")

	s.Equal(0, result.Created)
	s.Equal(1, result.Merged)
	s.Require().Len(result.Stock, 1)
	s.InDelta(2.5, result.Stock[0].Quantity, 1e-9)
	s.Equal("kg", result.Stock[0].Unit)
}

func (s *PantryServiceTestSuite) TestAddItemFillsDefaultExpiry() {
	result, err := s.service.AddItem(s.ctx, inbound.AddItemCommand{
		UserID: s.userID,
		Item: inbound.IncomingItemCommand{
			Name:     "Solomillo",
			Quantity: 400,
			Unit:     "g",
			Category: "meat",
		},
		DefaultExpiry: true,
	})
	s.Require().NoError(err)
	s.Require().Len(result.Stock, 1)
	s.Require().NotNil(result.Stock[0].ExpiresAt)
}

func (s *PantryServiceTestSuite) TestAddItemPredictsMissingCategory() {
	result := s.addItem("Pechuga de Pollo", 1, "kg", "")

	s.Require().Len(result.Stock, 1)
	s.Equal("meat", result.Stock[0].Category)
	s.Equal("Pechuga de Pollo", result.ProteinAdded)
}

func (s *PantryServiceTestSuite) TestReconcileBatchCountsCreatedAndMerged() {
	s.addItem("Arroz", 1, "kg", "grains")

	result, err := s.service.ReconcileBatch(s.ctx, inbound.ReconcileBatchCommand{
		UserID: s.userID,
		Items: []inbound.IncomingItemCommand{
			{Name: "Arroz", Quantity: 500, Unit: "g", Category: "grains"},
			{Name: "Lentejas", Quantity: 400, Unit: "g", Category: "grains"},
		},
	})
	s.Require().NoError(err)

	s.Equal(1, result.Created)
	s.Equal(1, result.Merged)
	s.Len(result.Stock, 2)
}

func (s *PantryServiceTestSuite) TestReconcileBatchFoldsDuplicates() {
	faker := gofakeit.New(7)
	items := make([]inbound.IncomingItemCommand, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, inbound.IncomingItemCommand{
			Name:     faker.Vegetable(),
			Quantity: faker.Float64Range(0.1, 5),
			Unit:     "kg",
			Category: "vegetables",
		})
	}

	result, err := s.service.ReconcileBatch(s.ctx, inbound.ReconcileBatchCommand{
		UserID: s.userID,
		Items:  items,
	})
	s.Require().NoError(err)

	s.Equal(len(items), result.Created+result.Merged)
	s.Len(result.Stock, result.Created)
}

func (s *PantryServiceTestSuite) TestApplyConsumptionDepletesAndRemoves() {
	s.addItem("Leche", 2, "l", "dairy")
	s.addItem("Arroz", 500, "g", "grains")

	result, err := s.service.ApplyConsumption(s.ctx, inbound.ConsumeCommand{
		UserID: s.userID,
		Usage: []inbound.UsageRecordCommand{
			{Name: "Leche", Quantity: 500, Unit: "ml"},
			{Name: "Arroz", Quantity: 500, Unit: "g"},
		},
	})
	s.Require().NoError(err)

	s.Equal(2, result.Applied)
	s.Equal(1, result.Removed)
	s.Require().Len(result.Stock, 1)
	s.Equal("Leche", result.Stock[0].Name)
	s.InDelta(1.5, result.Stock[0].Quantity, 1e-9)

	stock, err := s.service.ListStock(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(stock, 1)
}

func (s *PantryServiceTestSuite) TestApplyConsumptionSkipsUnknownItems() {
	s.addItem("Leche", 1, "l", "dairy")

	result, err := s.service.ApplyConsumption(s.ctx, inbound.ConsumeCommand{
		UserID: s.userID,
		Usage: []inbound.UsageRecordCommand{
			{Name: "Azafran", Quantity: 1, Unit: "g"},
		},
	})
	s.Require().NoError(err)

	s.Equal(0, result.Applied)
	s.Equal(1, result.Skipped)
	s.Len(result.Stock, 1)
}

func (s *PantryServiceTestSuite) TestRemoveItemDeletesFromStock() {
	result := s.addItem("Tomates", 2, "kg", "vegetables")

	err := s.service.RemoveItem(s.ctx, s.userID, result.Stock[0].ID)
	s.Require().NoError(err)

	stock, err := s.service.ListStock(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(stock)
}

func (s *PantryServiceTestSuite) TestRemoveItemUnknownIDReturnsNotFound() {
	err := s.service.RemoveItem(s.ctx, s.userID, uuid.New())
	s.Require().Error(err)

	var appErr *apperrors.AppError
	s.Require().True(stderrors.As(err, &appErr))
	s.Equal(apperrors.CodeStockItemNotFound, appErr.Code)
}

func (s *PantryServiceTestSuite) TestShoppingNeedsDiscountsStock() {
	s.addItem("Tomates", 500, "g", "vegetables")

	needs, err := s.service.ShoppingNeeds(s.ctx, inbound.ShoppingNeedsCommand{
		UserID: s.userID,
		Demands: []inbound.DemandCommand{
			{
				Recipe:          "Ensalada",
				Ingredient:      "Tomate",
				Quantity:        1,
				Unit:            "kg",
				Category:        "vegetables",
				RecipeServings:  2,
				PlannedServings: 2,
			},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(needs, 1)
	s.InDelta(500, needs[0].Quantity, 1e-9)
	s.Equal("g", needs[0].Unit)
	s.Equal([]string{"Ensalada"}, needs[0].SourceRecipes)
}

func TestPantryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PantryServiceTestSuite))
}

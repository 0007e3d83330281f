package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyago/internal/api/controllers"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo,
	providePromptService,
	provideItineraryService,
	provideItineraryController,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func providePromptService() services.PromptServiceInterface {
	return services.NewPromptService()
}

func provideItineraryService(
	promptService services.PromptServiceInterface,
	accountService services.AccountServiceInterface,
	completion utils.CompletionClientInterface,
	itineraryRepo repositories.ItineraryRepository,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(promptService, accountService, completion, itineraryRepo)
}

func provideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}

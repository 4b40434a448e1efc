package app

import (
	"fmt"

	featureFlagCache "github.com/attractionops/platform/internal/featureflag/cache"
	featureFlagHTTP "github.com/attractionops/platform/internal/featureflag/http"
	featureFlagRepository "github.com/attractionops/platform/internal/featureflag/repository"
	featureFlagUseCase "github.com/attractionops/platform/internal/featureflag/usecase"
)

// FeatureFlagRepository returns the feature flag repository based on database driver.
func (c *Container) FeatureFlagRepository() (featureFlagUseCase.FeatureFlagRepository, error) {
	var err error
	c.featureFlagRepositoryInit.Do(func() {
		c.featureFlagRepository, err = c.initFeatureFlagRepository()
		if err != nil {
			c.initErrors["featureFlagRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["featureFlagRepository"]; exists {
		return nil, storedErr
	}
	return c.featureFlagRepository, nil
}

// FeatureFlagCache returns the process-local flag definition cache.
func (c *Container) FeatureFlagCache() featureFlagCache.Cache {
	c.featureFlagCacheInit.Do(func() {
		c.featureFlagCache = featureFlagCache.NewMemoryCache(c.config.FeatureFlagCacheTTL)
	})
	return c.featureFlagCache
}

// Evaluator returns the feature flag evaluator.
func (c *Container) Evaluator() (featureFlagUseCase.Evaluator, error) {
	var err error
	c.evaluatorInit.Do(func() {
		c.evaluator, err = c.initEvaluator()
		if err != nil {
			c.initErrors["evaluator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["evaluator"]; exists {
		return nil, storedErr
	}
	return c.evaluator, nil
}

// FeatureFlagUseCase returns the feature flag administration use case.
func (c *Container) FeatureFlagUseCase() (featureFlagUseCase.FeatureFlagUseCase, error) {
	var err error
	c.featureFlagUseCaseInit.Do(func() {
		c.featureFlagUseCase, err = c.initFeatureFlagUseCase()
		if err != nil {
			c.initErrors["featureFlagUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["featureFlagUseCase"]; exists {
		return nil, storedErr
	}
	return c.featureFlagUseCase, nil
}

// FeatureFlagHandler returns the HTTP handler for feature flag administration.
func (c *Container) FeatureFlagHandler() (*featureFlagHTTP.FeatureFlagHandler, error) {
	var err error
	c.featureFlagHandlerInit.Do(func() {
		c.featureFlagHandler, err = c.initFeatureFlagHandler()
		if err != nil {
			c.initErrors["featureFlagHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["featureFlagHandler"]; exists {
		return nil, storedErr
	}
	return c.featureFlagHandler, nil
}

// initFeatureFlagRepository creates the feature flag repository based on the database driver.
func (c *Container) initFeatureFlagRepository() (featureFlagUseCase.FeatureFlagRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for feature flag repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return featureFlagRepository.NewPostgreSQLFeatureFlagRepository(db), nil
	case "mysql":
		return featureFlagRepository.NewMySQLFeatureFlagRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEvaluator creates the evaluator over the repository-backed decider.
func (c *Container) initEvaluator() (featureFlagUseCase.Evaluator, error) {
	flagRepository, err := c.FeatureFlagRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get feature flag repository for evaluator: %w", err)
	}

	decider := featureFlagUseCase.NewRepositoryDecider(flagRepository)
	baseEvaluator := featureFlagUseCase.NewEvaluator(decider, flagRepository, c.FeatureFlagCache(), c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for evaluator: %w", err)
		}
		return featureFlagUseCase.NewEvaluatorWithMetrics(baseEvaluator, businessMetrics), nil
	}

	return baseEvaluator, nil
}

// initFeatureFlagUseCase creates the feature flag use case with all its dependencies.
func (c *Container) initFeatureFlagUseCase() (featureFlagUseCase.FeatureFlagUseCase, error) {
	flagRepository, err := c.FeatureFlagRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get feature flag repository for feature flag use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for feature flag use case: %w", err)
	}

	baseUseCase := featureFlagUseCase.NewFeatureFlagUseCase(txManager, flagRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for feature flag use case: %w", err)
		}
		return featureFlagUseCase.NewFeatureFlagUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initFeatureFlagHandler creates the feature flag HTTP handler with all its dependencies.
func (c *Container) initFeatureFlagHandler() (*featureFlagHTTP.FeatureFlagHandler, error) {
	flagUseCase, err := c.FeatureFlagUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get feature flag use case for feature flag handler: %w", err)
	}

	evaluator, err := c.Evaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluator for feature flag handler: %w", err)
	}

	return featureFlagHTTP.NewFeatureFlagHandler(flagUseCase, evaluator, c.Logger()), nil
}

package app

import (
	"fmt"

	authzHTTP "github.com/attractionops/platform/internal/authz/http"
	"github.com/attractionops/platform/internal/authz/pipeline"
	authzRepository "github.com/attractionops/platform/internal/authz/repository"
	authzService "github.com/attractionops/platform/internal/authz/service"
	authzUseCase "github.com/attractionops/platform/internal/authz/usecase"
)

// TokenService returns the bearer token service.
func (c *Container) TokenService() (authzService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = authzService.NewTokenService(c.config.AuthJWTSecret, c.config.AuthJWTIssuer)
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// SuperAdminRepository returns the super admin repository based on database driver.
func (c *Container) SuperAdminRepository() (authzUseCase.SuperAdminRepository, error) {
	var err error
	c.superAdminRepositoryInit.Do(func() {
		c.superAdminRepository, err = c.initSuperAdminRepository()
		if err != nil {
			c.initErrors["superAdminRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["superAdminRepository"]; exists {
		return nil, storedErr
	}
	return c.superAdminRepository, nil
}

// MembershipRepository returns the membership repository based on database driver.
func (c *Container) MembershipRepository() (authzUseCase.MembershipRepository, error) {
	var err error
	c.membershipRepositoryInit.Do(func() {
		c.membershipRepository, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepository"]; exists {
		return nil, storedErr
	}
	return c.membershipRepository, nil
}

// OrganizationRepository returns the organization repository based on database driver.
func (c *Container) OrganizationRepository() (authzUseCase.OrganizationRepository, error) {
	var err error
	c.organizationRepositoryInit.Do(func() {
		c.organizationRepository, err = c.initOrganizationRepository()
		if err != nil {
			c.initErrors["organizationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationRepository"]; exists {
		return nil, storedErr
	}
	return c.organizationRepository, nil
}

// AttractionRepository returns the attraction repository based on database driver.
func (c *Container) AttractionRepository() (authzUseCase.AttractionRepository, error) {
	var err error
	c.attractionRepositoryInit.Do(func() {
		c.attractionRepository, err = c.initAttractionRepository()
		if err != nil {
			c.initErrors["attractionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["attractionRepository"]; exists {
		return nil, storedErr
	}
	return c.attractionRepository, nil
}

// AuthenticationUseCase returns the authentication use case.
func (c *Container) AuthenticationUseCase() (authzUseCase.AuthenticationUseCase, error) {
	var err error
	c.authenticationUseCaseInit.Do(func() {
		c.authenticationUseCase, err = c.initAuthenticationUseCase()
		if err != nil {
			c.initErrors["authenticationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authenticationUseCase, nil
}

// TenantResolver returns the tenant resolver.
func (c *Container) TenantResolver() (authzUseCase.TenantResolver, error) {
	var err error
	c.tenantResolverInit.Do(func() {
		c.tenantResolver, err = c.initTenantResolver()
		if err != nil {
			c.initErrors["tenantResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantResolver"]; exists {
		return nil, storedErr
	}
	return c.tenantResolver, nil
}

// MemberUseCase returns the member use case.
func (c *Container) MemberUseCase() (authzUseCase.MemberUseCase, error) {
	var err error
	c.memberUseCaseInit.Do(func() {
		c.memberUseCase, err = c.initMemberUseCase()
		if err != nil {
			c.initErrors["memberUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["memberUseCase"]; exists {
		return nil, storedErr
	}
	return c.memberUseCase, nil
}

// SuperAdminUseCase returns the super admin use case.
func (c *Container) SuperAdminUseCase() (authzUseCase.SuperAdminUseCase, error) {
	var err error
	c.superAdminUseCaseInit.Do(func() {
		var repo authzUseCase.SuperAdminRepository
		repo, err = c.SuperAdminRepository()
		if err != nil {
			err = fmt.Errorf("failed to get super admin repository for super admin use case: %w", err)
			c.initErrors["superAdminUseCase"] = err
			return
		}
		c.superAdminUseCase = authzUseCase.NewSuperAdminUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["superAdminUseCase"]; exists {
		return nil, storedErr
	}
	return c.superAdminUseCase, nil
}

// AuthorizationPipeline returns the standard authorization pipeline.
func (c *Container) AuthorizationPipeline() (*pipeline.Pipeline, error) {
	var err error
	c.authorizationPipelineInit.Do(func() {
		c.authorizationPipeline, err = c.initAuthorizationPipeline()
		if err != nil {
			c.initErrors["authorizationPipeline"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizationPipeline"]; exists {
		return nil, storedErr
	}
	return c.authorizationPipeline, nil
}

// OrganizationHandler returns the HTTP handler for organization-scoped operations.
func (c *Container) OrganizationHandler() (*authzHTTP.OrganizationHandler, error) {
	var err error
	c.organizationHandlerInit.Do(func() {
		c.organizationHandler, err = c.initOrganizationHandler()
		if err != nil {
			c.initErrors["organizationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["organizationHandler"]; exists {
		return nil, storedErr
	}
	return c.organizationHandler, nil
}

// initSuperAdminRepository creates the super admin repository based on the database driver.
func (c *Container) initSuperAdminRepository() (authzUseCase.SuperAdminRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for super admin repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLSuperAdminRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLSuperAdminRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMembershipRepository creates the membership repository based on the database driver.
func (c *Container) initMembershipRepository() (authzUseCase.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLMembershipRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLMembershipRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initOrganizationRepository creates the organization repository based on the database driver.
func (c *Container) initOrganizationRepository() (authzUseCase.OrganizationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for organization repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLOrganizationRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLOrganizationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAttractionRepository creates the attraction repository based on the database driver.
func (c *Container) initAttractionRepository() (authzUseCase.AttractionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for attraction repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLAttractionRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLAttractionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthenticationUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthenticationUseCase() (authzUseCase.AuthenticationUseCase, error) {
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for authentication use case: %w", err)
	}

	superAdminRepository, err := c.SuperAdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get super admin repository for authentication use case: %w", err)
	}

	baseUseCase := authzUseCase.NewAuthenticationUseCase(tokenService, superAdminRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authentication use case: %w", err)
		}
		return authzUseCase.NewAuthenticationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTenantResolver creates the tenant resolver with all its dependencies.
func (c *Container) initTenantResolver() (authzUseCase.TenantResolver, error) {
	membershipRepository, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for tenant resolver: %w", err)
	}

	organizationRepository, err := c.OrganizationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get organization repository for tenant resolver: %w", err)
	}

	attractionRepository, err := c.AttractionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get attraction repository for tenant resolver: %w", err)
	}

	baseResolver := authzUseCase.NewTenantResolver(
		membershipRepository,
		organizationRepository,
		attractionRepository,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for tenant resolver: %w", err)
		}
		return authzUseCase.NewTenantResolverWithMetrics(baseResolver, businessMetrics), nil
	}

	return baseResolver, nil
}

// initMemberUseCase creates the member use case with all its dependencies.
func (c *Container) initMemberUseCase() (authzUseCase.MemberUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for member use case: %w", err)
	}

	membershipRepository, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for member use case: %w", err)
	}

	baseUseCase := authzUseCase.NewMemberUseCase(txManager, membershipRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for member use case: %w", err)
		}
		return authzUseCase.NewMemberUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthorizationPipeline assembles the ordered authorization stages.
func (c *Container) initAuthorizationPipeline() (*pipeline.Pipeline, error) {
	authenticationUseCase, err := c.AuthenticationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authentication use case for authorization pipeline: %w", err)
	}

	tenantResolver, err := c.TenantResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant resolver for authorization pipeline: %w", err)
	}

	evaluator, err := c.Evaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluator for authorization pipeline: %w", err)
	}

	return pipeline.New(authenticationUseCase, tenantResolver, evaluator), nil
}

// initOrganizationHandler creates the organization HTTP handler with all its dependencies.
func (c *Container) initOrganizationHandler() (*authzHTTP.OrganizationHandler, error) {
	tenantResolver, err := c.TenantResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant resolver for organization handler: %w", err)
	}

	memberUseCase, err := c.MemberUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get member use case for organization handler: %w", err)
	}

	evaluator, err := c.Evaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluator for organization handler: %w", err)
	}

	return authzHTTP.NewOrganizationHandler(tenantResolver, memberUseCase, evaluator, c.Logger()), nil
}

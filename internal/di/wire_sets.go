package di

import (
	"github.com/google/wire"
)

// SuperSet combines all provider sets for the complete application.
var SuperSet = wire.NewSet(
	InfrastructureProviders,
	ContentProviders,
	InterfaceProviders,
	provideContainer,
)

// InfrastructureProviders opens the remote store and media storage drivers.
var InfrastructureProviders = wire.NewSet(
	provideMetrics,
	provideRemoteStore,
	provideMediaStorage,
)

// ContentProviders builds the content store and the upload service.
var ContentProviders = wire.NewSet(
	provideContentStore,
	provideMediaService,
)

// InterfaceProviders provides the HTTP layer.
var InterfaceProviders = wire.NewSet(
	provideAdminSecret,
	provideRouter,
)

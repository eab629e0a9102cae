package cmd

import (
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDriverStatusCommandHandler() commands.SetDriverStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDeliveryStatusCommandHandler() commands.SetDeliveryStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordAuditAccessCommandHandler() commands.RecordAuditAccessCommandHandler {
	var f commands.AuditUoWFactory = FuncAuditUoWFactory(func() commands.AuditUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordAuditAccessCommandHandler(f)
}

func (c *CompositionRoot) CreateFlagOverdueAssignmentsCommandHandler() commands.FlagOverdueAssignmentsCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFlagOverdueAssignmentsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllDeliveriesQueryHandler() queries.GetAllDeliveriesQueryHandler {
	return queries.NewGetAllDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverDeliveriesQueryHandler() queries.GetDriverDeliveriesQueryHandler {
	return queries.NewGetDriverDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogQueryHandler() queries.GetAuditLogQueryHandler {
	return queries.NewGetAuditLogQueryHandler(c.gormDB)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncAuditUoWFactory func() commands.AuditUoW

func (f FuncAuditUoWFactory) Create() commands.AuditUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

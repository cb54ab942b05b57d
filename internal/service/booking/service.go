package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/internal/repository"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/logger"
	"github.com/beautysalon/salon-api/pkg/messaging"
	"github.com/beautysalon/salon-api/pkg/metrics"
)

const defaultCancelReason = "Cancelled by customer"

// Service owns the booking lifecycle: creation with conflict checking, the
// status state machine, loyalty crediting and tier upgrades, and slot
// availability. Every multi-write path runs inside a single transaction;
// notifications are published only after commit.
type Service struct {
	store   repository.Store
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewService(store repository.Store, broker messaging.Broker, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		broker:  broker,
		metrics: m,
		logger:  log,
	}
}

// Create books an appointment for the user. The customer profile is created
// lazily on first booking. When a stylist is requested, the stylist row is
// locked before the conflict check so two concurrent requests for the same
// slot cannot both pass it.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreateBookingRequest) (*model.BookingDetail, error) {
	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, apperr.NewValidation("invalid booking date")
	}

	var (
		detail *model.BookingDetail
		event  *model.BookingEvent
	)
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().Get(ctx, userID)
		if err != nil {
			return err
		}

		customer, err := s.ensureCustomer(ctx, tx, userID)
		if err != nil {
			return err
		}

		services, err := s.resolveServices(ctx, tx, req.ServiceIDs)
		if err != nil {
			return err
		}

		totalDuration := 0
		totalPrice := 0.0
		for _, svc := range services {
			totalDuration += svc.Duration
			totalPrice += svc.Price
		}

		endTime, err := addMinutes(req.StartTime, totalDuration)
		if err != nil {
			return err
		}
		if req.StartTime < openingTime || endTime > closingTime {
			return apperr.NewValidation("booking must fall within salon hours")
		}

		var stylistName *string
		if req.StylistID != nil {
			stylist, err := tx.Stylists().Get(ctx, *req.StylistID)
			if err != nil {
				return err
			}
			if !stylist.Bookable() {
				return apperr.NewValidation("stylist is not available for booking")
			}
			stylistName = &stylist.Name

			if err := tx.Stylists().Lock(ctx, stylist.ID); err != nil {
				return err
			}
			conflict, err := tx.Bookings().HasConflict(ctx, stylist.ID, date, req.StartTime, endTime)
			if err != nil {
				return err
			}
			if conflict {
				s.metrics.BookingConflicts.Inc()
				return apperr.NewConflict("the selected time slot is already booked")
			}
		}

		booking := &model.Booking{
			CustomerID:  customer.ID,
			StylistID:   req.StylistID,
			BookingDate: date,
			StartTime:   req.StartTime,
			EndTime:     endTime,
			Status:      model.BookingStatusPending,
			TotalPrice:  totalPrice,
			Notes:       req.Notes,
		}
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}

		items := make([]*model.BookingService, 0, len(services))
		serviceNames := make([]string, 0, len(services))
		for _, svc := range services {
			items = append(items, &model.BookingService{
				BookingID: booking.ID,
				ServiceID: svc.ID,
				Name:      svc.Name,
				Duration:  svc.Duration,
				Price:     svc.Price,
			})
			serviceNames = append(serviceNames, svc.Name)
		}
		if err := tx.Bookings().CreateLineItems(ctx, items); err != nil {
			return err
		}

		detail = &model.BookingDetail{Booking: *booking, Services: items}
		if stylistName != nil {
			detail.StylistName = stylistName
		}
		event = &model.BookingEvent{
			Type:          model.EventBookingCreated,
			BookingID:     booking.ID,
			CustomerName:  user.Name,
			CustomerEmail: user.Email,
			StylistName:   stylistName,
			BookingDate:   date,
			StartTime:     booking.StartTime,
			Services:      serviceNames,
			TotalPrice:    totalPrice,
			Status:        booking.Status,
			OccurredAt:    time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BookingsCreated.Inc()
	s.publish(ctx, event)
	return detail, nil
}

// UpdateStatus moves a booking through the state machine. Completion credits
// loyalty points; confirmation and completion recompute the customer's tier
// from their settled booking count, all within the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateBookingStatusRequest) (*model.Booking, error) {
	var (
		booking *model.Booking
		from    model.BookingStatus
		event   *model.BookingEvent
	)
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		booking, err = tx.Bookings().Get(ctx, id)
		if err != nil {
			return err
		}
		from = booking.Status

		if err := checkTransition(from, req.Status); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, id, req.Status, req.StylistID); err != nil {
			return err
		}
		booking.Status = req.Status
		if req.StylistID != nil {
			booking.StylistID = req.StylistID
		}

		if req.Status == model.BookingStatusCompleted {
			points := loyaltyPointsFor(booking.TotalPrice)
			if points > 0 {
				if err := tx.Customers().AddLoyaltyPoints(ctx, booking.CustomerID, points); err != nil {
					return err
				}
				s.metrics.LoyaltyPoints.Add(float64(points))
			}
		}

		if req.Status == model.BookingStatusConfirmed || req.Status == model.BookingStatusCompleted {
			if err := s.refreshTier(ctx, tx, booking.CustomerID); err != nil {
				return err
			}
		}

		switch req.Status {
		case model.BookingStatusConfirmed:
			event, err = s.buildEvent(ctx, tx, booking, model.EventBookingConfirmed)
		case model.BookingStatusCompleted:
			event, err = s.buildEvent(ctx, tx, booking, model.EventBookingCompleted)
		case model.BookingStatusCancelled:
			event, err = s.buildEvent(ctx, tx, booking, model.EventBookingCancelled)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(from), string(booking.Status)).Inc()
	s.publish(ctx, event)
	return booking, nil
}

// Cancel lets a customer cancel their own booking. Only pending and confirmed
// bookings can be cancelled.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uuid.UUID, req *model.CancelBookingRequest) (*model.Booking, error) {
	var (
		booking *model.Booking
		from    model.BookingStatus
		event   *model.BookingEvent
	)
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}

		booking, err = tx.Bookings().GetForCustomer(ctx, bookingID, customer.ID)
		if err != nil {
			return err
		}
		from = booking.Status

		if err := checkTransition(from, model.BookingStatusCancelled); err != nil {
			return err
		}

		reason := defaultCancelReason
		if req != nil && req.Reason != nil && *req.Reason != "" {
			reason = *req.Reason
		}
		if err := tx.Bookings().Cancel(ctx, bookingID, reason); err != nil {
			return err
		}
		booking.Status = model.BookingStatusCancelled
		booking.CancelReason = &reason

		event, err = s.buildEvent(ctx, tx, booking, model.EventBookingCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(from), string(model.BookingStatusCancelled)).Inc()
	s.publish(ctx, event)
	return booking, nil
}

// AvailableSlots lists the open slot start times for a date, optionally
// scoped to one stylist. Cancelled and no-show bookings do not block slots.
func (s *Service) AvailableSlots(ctx context.Context, dateStr string, stylistID *uuid.UUID) ([]string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperr.NewValidation("invalid date")
	}
	if stylistID != nil {
		if _, err := s.store.Stylists().Get(ctx, *stylistID); err != nil {
			return nil, err
		}
	}

	booked, err := s.store.Bookings().BookedIntervals(ctx, date, stylistID)
	if err != nil {
		return nil, err
	}
	return availableSlots(booked), nil
}

// Get returns one booking with line items and stylist details.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.BookingDetail, error) {
	booking, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.toDetails(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// GetForCustomer returns one of the user's own bookings.
func (s *Service) GetForCustomer(ctx context.Context, userID, bookingID uuid.UUID) (*model.BookingDetail, error) {
	customer, err := s.store.Customers().GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	booking, err := s.store.Bookings().GetForCustomer(ctx, bookingID, customer.ID)
	if err != nil {
		return nil, err
	}
	details, err := s.toDetails(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// List returns a page of bookings with their line items attached. Line items
// for the whole page are fetched in a single follow-up query instead of a
// row-multiplying join.
func (s *Service) List(ctx context.Context, filters *model.BookingFilters) ([]*model.BookingDetail, model.PageInfo, error) {
	filters.Pagination.Normalize(20, 100)

	bookings, total, err := s.store.Bookings().List(ctx, filters)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	details, err := s.toDetails(ctx, bookings)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	return details, model.NewPageInfo(filters.Pagination, total), nil
}

// ListForCustomer returns a page of the user's own bookings. A user with no
// customer profile yet simply has no bookings.
func (s *Service) ListForCustomer(ctx context.Context, userID uuid.UUID, filters *model.BookingFilters) ([]*model.BookingDetail, model.PageInfo, error) {
	customer, err := s.store.Customers().GetByUserID(ctx, userID)
	if apperr.IsNotFound(err) {
		filters.Pagination.Normalize(20, 100)
		return []*model.BookingDetail{}, model.NewPageInfo(filters.Pagination, 0), nil
	}
	if err != nil {
		return nil, model.PageInfo{}, err
	}

	filters.CustomerID = &customer.ID
	return s.List(ctx, filters)
}

// Stats returns the admin booking aggregate.
func (s *Service) Stats(ctx context.Context) (*model.BookingStats, error) {
	return s.store.Bookings().Stats(ctx)
}

func (s *Service) ensureCustomer(ctx context.Context, tx repository.Store, userID uuid.UUID) (*model.Customer, error) {
	customer, err := tx.Customers().GetByUserID(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	customer = &model.Customer{
		UserID: userID,
		Tier:   model.TierBronze,
	}
	if err := tx.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveServices loads the requested services and rejects the booking when
// any of them is missing or inactive. Order and duplicates in the request are
// preserved in the result.
func (s *Service) resolveServices(ctx context.Context, tx repository.Store, ids []uuid.UUID) ([]*model.Service, error) {
	found, err := tx.Services().ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	services := make([]*model.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, apperr.NewValidation(fmt.Sprintf("service %s is unavailable", id))
		}
		services = append(services, svc)
	}
	return services, nil
}

func (s *Service) refreshTier(ctx context.Context, tx repository.Store, customerID uuid.UUID) error {
	settled, err := tx.Bookings().CountByCustomerWithStatuses(ctx, customerID, []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusCompleted,
	})
	if err != nil {
		return err
	}

	customer, err := tx.Customers().Get(ctx, customerID)
	if err != nil {
		return err
	}
	tier := TierFor(settled)
	if customer.Tier == tier {
		return nil
	}
	return tx.Customers().UpdateTier(ctx, customerID, tier)
}

func (s *Service) buildEvent(ctx context.Context, tx repository.Store, booking *model.Booking, eventType string) (*model.BookingEvent, error) {
	customer, err := tx.Customers().Get(ctx, booking.CustomerID)
	if err != nil {
		return nil, err
	}
	user, err := tx.Users().Get(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}

	var stylistName *string
	if booking.StylistID != nil {
		stylist, err := tx.Stylists().Get(ctx, *booking.StylistID)
		if err == nil {
			stylistName = &stylist.Name
		} else if !apperr.IsNotFound(err) {
			return nil, err
		}
	}

	items, err := tx.Bookings().LineItemsForBookings(ctx, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}
	serviceNames := make([]string, 0, len(items[booking.ID]))
	for _, item := range items[booking.ID] {
		serviceNames = append(serviceNames, item.Name)
	}

	return &model.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		StylistName:   stylistName,
		BookingDate:   booking.BookingDate,
		StartTime:     booking.StartTime,
		Services:      serviceNames,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		OccurredAt:    time.Now(),
	}, nil
}

func (s *Service) publish(ctx context.Context, event *model.BookingEvent) {
	if s.broker == nil || event == nil {
		return
	}
	if err := s.broker.Publish(ctx, model.BookingEventsChannel, event); err != nil {
		s.logger.Error(err, "failed to publish booking event", "booking_id", event.BookingID, "type", event.Type)
	}
}

// toDetails attaches line items and stylist info to a page of bookings.
func (s *Service) toDetails(ctx context.Context, bookings []*model.Booking) ([]*model.BookingDetail, error) {
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	items, err := s.store.Bookings().LineItemsForBookings(ctx, ids)
	if err != nil {
		return nil, err
	}

	stylists := map[uuid.UUID]*model.Stylist{}
	details := make([]*model.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		detail := &model.BookingDetail{Booking: *b, Services: items[b.ID]}
		if detail.Services == nil {
			detail.Services = []*model.BookingService{}
		}
		if b.StylistID != nil {
			stylist, ok := stylists[*b.StylistID]
			if !ok {
				stylist, err = s.store.Stylists().Get(ctx, *b.StylistID)
				if apperr.IsNotFound(err) {
					stylist = nil
				} else if err != nil {
					return nil, err
				}
				stylists[*b.StylistID] = stylist
			}
			if stylist != nil {
				detail.StylistName = &stylist.Name
				detail.Specialization = stylist.Specialization
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

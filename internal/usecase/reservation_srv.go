package usecase

import (
	"context"
	"time"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/data/repository"
	"activity-booking/internal/dto/request"
	"activity-booking/internal/dto/response"
	"activity-booking/pkg/asaas"
	"activity-booking/pkg/clock"
	"activity-booking/pkg/events"
	"activity-booking/pkg/lock"
	"activity-booking/pkg/mailer"
	"activity-booking/pkg/utils"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

//go:generate mockgen -source=reservation_srv.go -destination=mocks/mock_reservation_srv.go -package=mocks

type ConfirmResult int

const (
	ConfirmFailed ConfirmResult = iota
	ConfirmAcknowledged
	ConfirmIgnored
)

func (r ConfirmResult) String() string {
	switch r {
	case ConfirmAcknowledged:
		return "acknowledged"
	case ConfirmIgnored:
		return "ignored"
	default:
		return "failed"
	}
}

type ReservationService interface {
	// RequestBooking errors are marked ErrValidation, ErrCapacity, ErrGateway or ErrStore.
	RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResult, error)
	// ConfirmPayment errors are marked ErrValidation, ErrNotFound, ErrStore or ErrNotify.
	ConfirmPayment(ctx context.Context, event *asaas.WebhookEvent) (ConfirmResult, error)
	GetReservation(ctx context.Context, id string) (*response.ReservationResult, error)
}

type ReservationConfig struct {
	CustomerID     string
	SplitWalletID  string
	FetchPixQrCode bool
	StoreTimeout   time.Duration
	GatewayTimeout time.Duration
	NotifyTimeout  time.Duration
}

// Collaborators of the reservation workflow. Notifier and Events are
// optional; Locker defaults to lock.Noop and Clock to the system clock.
type Collaborators struct {
	Gateway  PaymentGateway
	Notifier Notifier
	Events   EventPublisher
	Locker   lock.Locker
	Clock    clock.Clock
}

type reservationService struct {
	repo     repository.ReservationRepository
	gateway  PaymentGateway
	notifier Notifier
	events   EventPublisher
	locker   lock.Locker
	clock    clock.Clock
	cfg      ReservationConfig
	log      *zap.Logger
}

func NewReservationService(
	repo repository.ReservationRepository,
	deps Collaborators,
	cfg ReservationConfig,
	log *zap.Logger,
) ReservationService {
	s := &reservationService{
		repo:     repo,
		gateway:  deps.Gateway,
		notifier: deps.Notifier,
		events:   deps.Events,
		locker:   deps.Locker,
		clock:    deps.Clock,
		cfg:      cfg,
		log:      log.With(zap.String("service", "reservation")),
	}
	if s.locker == nil {
		s.locker = lock.Noop{}
	}
	if s.clock == nil {
		s.clock = clock.NewSystem()
	}
	return s
}

func (s *reservationService) RequestBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResult, error) {
	cmd, err := ParseBooking(req)
	if err != nil {
		s.log.Warn("Booking request rejected", zap.Error(err))
		return nil, err
	}

	reservation, err := s.reserve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	charge, err := s.requestCharge(ctx, reservation, cmd.Method)
	if err != nil {
		return nil, err
	}

	result := &response.BookingResult{
		Status:        utils.StatusOK,
		ReservationID: reservation.ID,
		Charge: response.ChargeResponse{
			ID:         charge.ID,
			Status:     charge.Status,
			InvoiceURL: charge.InvoiceURL,
		},
	}

	if cmd.Method == entity.BillingMethodPix && s.cfg.FetchPixQrCode {
		qr, err := s.fetchPixQrCode(ctx, reservation.ID, charge.ID)
		if err != nil {
			return nil, err
		}
		result.Charge.PixKey = qr.Payload
		result.Charge.QrCodeImage = qr.EncodedImage
		result.Charge.ExpirationDate = qr.ExpirationDate
	}

	s.log.Info("Booking requested",
		zap.String("reservation_id", reservation.ID),
		zap.String("charge_id", charge.ID),
		zap.String("billing_type", string(cmd.Method)),
	)

	return result, nil
}

// reserve runs the capacity check and the insert under the window lock.
func (s *reservationService) reserve(ctx context.Context, cmd BookingCommand) (*entity.Reservation, error) {
	release, err := s.locker.Acquire(ctx, utils.WindowKey(cmd.Date, cmd.TimeSlot))
	if errors.Is(err, lock.ErrLockTimeout) {
		s.log.Warn("Capacity window busy",
			zap.String("date", cmd.Date),
			zap.String("time_slot", cmd.TimeSlot),
		)
		return nil, mark(errors.Wrap(err, "lock capacity window"), ErrWindowBusy, ErrStore)
	}
	if err != nil {
		s.log.Error("Failed to lock capacity window",
			zap.Error(err),
			zap.String("date", cmd.Date),
			zap.String("time_slot", cmd.TimeSlot),
		)
		return nil, mark(errors.Wrap(err, "lock capacity window"), ErrStore)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("Failed to release capacity window", zap.Error(err))
		}
	}()

	findCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	existing, err := s.repo.FindByWindow(findCtx, cmd.Date, cmd.TimeSlot)
	cancel()
	if err != nil {
		s.log.Error("Failed to read capacity window", zap.Error(err))
		return nil, mark(errors.Wrap(err, "read capacity window"), ErrStore)
	}

	if !WindowAccepts(existing, cmd.Date, cmd.TimeSlot, cmd.PartySize) {
		booked := WindowTotal(existing, cmd.Date, cmd.TimeSlot)
		s.log.Warn("Capacity window full",
			zap.String("date", cmd.Date),
			zap.String("time_slot", cmd.TimeSlot),
			zap.Int("booked", booked),
			zap.Int("requested", cmd.PartySize),
		)
		return nil, mark(
			errors.Newf("window %s %s holds %d of %d, %d requested",
				cmd.Date, cmd.TimeSlot, booked, MaxWindowCapacity, cmd.PartySize),
			ErrCapacity,
		)
	}

	reservation := &entity.Reservation{
		ID:        utils.GenerateReservationID(),
		Name:      cmd.Name,
		Email:     cmd.Email,
		TaxID:     cmd.TaxID,
		Phone:     cmd.Phone,
		Activity:  cmd.Activity,
		Date:      cmd.Date,
		TimeSlot:  cmd.TimeSlot,
		PartySize: cmd.PartySize,
		Amount:    cmd.Amount,
		Note:      cmd.Note,
		Status:    entity.ReservationStatusPending,
		CreatedAt: s.clock.Now(),
	}

	createCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()
	if err := s.repo.Create(createCtx, reservation); err != nil {
		return nil, mark(errors.Wrap(err, "create reservation"), ErrStore)
	}

	return reservation, nil
}

func (s *reservationService) requestCharge(ctx context.Context, reservation *entity.Reservation, method entity.BillingMethod) (*asaas.Charge, error) {
	req := asaas.ChargeRequest{
		Customer:          s.cfg.CustomerID,
		BillingType:       string(method),
		Value:             reservation.Amount,
		DueDate:           s.clock.Now().Format("2006-01-02"),
		Description:       "Cobrança de " + reservation.Name,
		ExternalReference: reservation.ID,
	}

	if s.cfg.SplitWalletID != "" {
		amount := SplitAmount(method, reservation.Amount)
		if amount.IsPositive() {
			req.Split = []asaas.Split{{WalletID: s.cfg.SplitWalletID, FixedValue: amount}}
		} else {
			s.log.Warn("Split omitted, amount does not cover the fee",
				zap.String("reservation_id", reservation.ID),
				zap.String("amount", reservation.Amount.StringFixed(2)),
			)
		}
	}

	gatewayCtx, cancel := withTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	charge, err := s.gateway.CreateCharge(gatewayCtx, req)
	if err != nil {
		// the reservation stays pending with no charge behind it
		s.log.Error("Charge request failed",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID),
		)
		return nil, mark(errors.Wrap(err, "create charge"), ErrGateway)
	}

	return charge, nil
}

func (s *reservationService) fetchPixQrCode(ctx context.Context, reservationID, chargeID string) (*asaas.PixQrCode, error) {
	gatewayCtx, cancel := withTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	qr, err := s.gateway.GetPixQrCode(gatewayCtx, chargeID)
	if err != nil {
		s.log.Error("PIX QR code fetch failed",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("charge_id", chargeID),
		)
		return nil, mark(errors.Wrapf(err, "fetch pix qr code for charge %s", chargeID), ErrQRCodeFetch, ErrGateway)
	}

	return qr, nil
}

func (s *reservationService) ConfirmPayment(ctx context.Context, event *asaas.WebhookEvent) (ConfirmResult, error) {
	if event == nil || !event.IsPaymentConfirmed() {
		name := ""
		if event != nil {
			name = event.Event
		}
		s.log.Info("Webhook event ignored", zap.String("event", name))
		return ConfirmIgnored, nil
	}

	reference := event.ExternalReference()
	if reference == "" {
		s.log.Warn("Payment confirmation without external reference")
		return ConfirmFailed, mark(errors.WithStack(ErrMissingReference), ErrValidation)
	}
	if !utils.IsReservationID(reference) {
		s.log.Warn("Payment confirmation for unknown reference", zap.String("reference", reference))
		return ConfirmFailed, mark(errors.Wrapf(repository.ErrReservationNotFound, "reference %q", reference), ErrNotFound)
	}

	storeCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	err := s.repo.MarkPaid(storeCtx, reference, s.clock.Now())
	cancel()
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			s.log.Warn("Payment confirmation for unknown reservation", zap.String("reservation_id", reference))
			return ConfirmFailed, mark(err, ErrNotFound)
		}
		s.log.Error("Failed to mark reservation paid", zap.Error(err), zap.String("reservation_id", reference))
		return ConfirmFailed, mark(errors.Wrap(err, "mark paid"), ErrStore)
	}

	s.log.Info("Reservation paid", zap.String("reservation_id", reference))

	if s.notifier == nil && s.events == nil {
		return ConfirmAcknowledged, nil
	}

	storeCtx, cancel = withTimeout(ctx, s.cfg.StoreTimeout)
	reservation, err := s.repo.FindByID(storeCtx, reference)
	cancel()
	if err != nil {
		return ConfirmFailed, mark(errors.Wrap(err, "read paid reservation"), ErrStore)
	}
	if reservation == nil {
		return ConfirmFailed, mark(errors.Wrapf(repository.ErrReservationNotFound, "reference %q", reference), ErrNotFound)
	}

	s.publishPaid(ctx, reservation)

	if s.notifier == nil {
		return ConfirmAcknowledged, nil
	}

	notifyCtx, cancel := withTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	// a repeated delivery sends the email again; paid stays set either way
	if err := s.notifier.SendConfirmation(notifyCtx, confirmationFor(reservation)); err != nil {
		s.log.Error("Confirmation email failed",
			zap.Error(err),
			zap.String("reservation_id", reference),
		)
		return ConfirmFailed, mark(errors.Wrap(err, "send confirmation"), ErrNotify)
	}

	return ConfirmAcknowledged, nil
}

func (s *reservationService) publishPaid(ctx context.Context, r *entity.Reservation) {
	if s.events == nil {
		return
	}

	paidAt := ""
	if r.PaidAt != nil {
		paidAt = r.PaidAt.UTC().Format(time.RFC3339)
	}

	notifyCtx, cancel := withTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	err := s.events.PublishReservationPaid(notifyCtx, events.ReservationPaid{
		ReservationID: r.ID,
		Activity:      r.Activity,
		Date:          r.Date,
		TimeSlot:      r.TimeSlot,
		PartySize:     r.PartySize,
		AmountCents:   r.Amount.Shift(2).Round(0).IntPart(),
		PaidAt:        paidAt,
	})
	if err != nil {
		s.log.Warn("Failed to publish reservation paid event", zap.Error(err), zap.String("reservation_id", r.ID))
	}
}

func (s *reservationService) GetReservation(ctx context.Context, id string) (*response.ReservationResult, error) {
	if !utils.IsReservationID(id) {
		return nil, mark(errors.Wrapf(repository.ErrReservationNotFound, "id %q", id), ErrNotFound)
	}

	storeCtx, cancel := withTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	reservation, err := s.repo.FindByID(storeCtx, id)
	if err != nil {
		return nil, mark(errors.Wrap(err, "find reservation"), ErrStore)
	}
	if reservation == nil {
		return nil, mark(errors.Wrapf(repository.ErrReservationNotFound, "id %q", id), ErrNotFound)
	}

	return &response.ReservationResult{
		Status:      utils.StatusOK,
		Reservation: response.ReservationToResponse(reservation),
	}, nil
}

func confirmationFor(r *entity.Reservation) mailer.Confirmation {
	return mailer.Confirmation{
		ReservationID: r.ID,
		Name:          r.Name,
		Email:         r.Email,
		Activity:      r.Activity,
		Date:          r.Date,
		TimeSlot:      r.TimeSlot,
		PartySize:     r.PartySize,
	}
}

// withTimeout leaves ctx untouched when d is not positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

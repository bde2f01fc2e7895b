package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

type stubOpRepo struct {
	ops map[string]*domain.Operation
}

func newStubOpRepo(ops ...*domain.Operation) *stubOpRepo {
	r := &stubOpRepo{ops: make(map[string]*domain.Operation)}
	for _, op := range ops {
		r.ops[op.ID] = op
	}
	return r
}

func (r *stubOpRepo) Insert(_ context.Context, op *domain.Operation) error {
	r.ops[op.ID] = op
	return nil
}

func (r *stubOpRepo) FindByID(_ context.Context, id string) (*domain.Operation, error) {
	op, ok := r.ops[id]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	clone := *op
	return &clone, nil
}

func (r *stubOpRepo) Update(_ context.Context, op *domain.Operation) error {
	if _, ok := r.ops[op.ID]; !ok {
		return domain.ErrOperationNotFound
	}
	clone := *op
	r.ops[op.ID] = &clone
	return nil
}

func (r *stubOpRepo) List(_ context.Context, _ ports.ListOperationsFilter) ([]*domain.Operation, int64, error) {
	out := make([]*domain.Operation, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op)
	}
	return out, int64(len(out)), nil
}

func (r *stubOpRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Operation, error) {
	out := make([]*domain.Operation, 0, len(ids))
	for _, id := range ids {
		if op, ok := r.ops[id]; ok {
			out = append(out, op)
		}
	}
	return out, nil
}

type stubCampaignRepo struct {
	campaigns map[string]*domain.Campaign
}

func newStubCampaignRepo(campaigns ...*domain.Campaign) *stubCampaignRepo {
	r := &stubCampaignRepo{campaigns: make(map[string]*domain.Campaign)}
	for _, c := range campaigns {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *stubCampaignRepo) Insert(_ context.Context, c *domain.Campaign) error {
	r.campaigns[c.ID] = c
	return nil
}

func (r *stubCampaignRepo) FindByID(_ context.Context, id string) (*domain.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCampaignRepo) Delete(_ context.Context, id string) error {
	delete(r.campaigns, id)
	return nil
}

func (r *stubCampaignRepo) List(_ context.Context, _ ports.ListCampaignsFilter) ([]*domain.Campaign, int64, error) {
	out := make([]*domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCampaignRepo) SetStatus(_ context.Context, id string, status domain.CampaignStatus) error {
	c, ok := r.campaigns[id]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	now := time.Now().UTC()
	c.Status = status
	switch status {
	case domain.CampaignCompleted:
		c.CompletedAt = &now
	case domain.CampaignClosed:
		c.ClosedAt = &now
	}
	return nil
}

func (r *stubCampaignRepo) ListByOperation(_ context.Context, operationID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	var out []*domain.Campaign
	for _, c := range r.campaigns {
		if c.OperationID == operationID && c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCampaignRepo) DistinctOperationIDs(_ context.Context, status domain.CampaignStatus) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range r.campaigns {
		if c.Status != status {
			continue
		}
		if _, ok := seen[c.OperationID]; !ok {
			seen[c.OperationID] = struct{}{}
			out = append(out, c.OperationID)
		}
	}
	return out, nil
}

type stubVehicleRepo struct {
	vehicles  map[string]*domain.CampaignVehicle
	insertErr error
}

func newStubVehicleRepo(vehicles ...*domain.CampaignVehicle) *stubVehicleRepo {
	r := &stubVehicleRepo{vehicles: make(map[string]*domain.CampaignVehicle)}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *stubVehicleRepo) InsertMany(_ context.Context, vehicles []*domain.CampaignVehicle) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id string) (*domain.CampaignVehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVehicleRepo) ListByCampaign(_ context.Context, campaignID string, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error) {
	var out []*domain.CampaignVehicle
	for _, v := range r.vehicles {
		if v.CampaignID != campaignID {
			continue
		}
		if len(statuses) == 0 {
			out = append(out, v)
			continue
		}
		for _, st := range statuses {
			if v.Status == st {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) ListByStatuses(_ context.Context, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error) {
	var out []*domain.CampaignVehicle
	for _, v := range r.vehicles {
		for _, st := range statuses {
			if v.Status == st {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) UpdateStatus(_ context.Context, id string, status domain.VehicleStatus) error {
	v, ok := r.vehicles[id]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
	return nil
}

type stubCallLogRepo struct {
	logs      []*domain.CallLog
	insertErr error
}

func (r *stubCallLogRepo) Insert(_ context.Context, log *domain.CallLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *stubCallLogRepo) ListByVehicle(_ context.Context, vehicleID string) ([]*domain.CallLog, error) {
	var out []*domain.CallLog
	for _, l := range r.logs {
		if l.VehicleID == vehicleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func activeOperation(id string) *domain.Operation {
	return &domain.Operation{
		ID:        id,
		Name:      "Operación Bogotá - Medellín",
		Origin:    "Bogotá",
		Destination: "Medellín",
		Status:    domain.OperationActive,
		CreatedAt: time.Now().UTC(),
	}
}

func TestParseBulkVehicles_Valid(t *testing.T) {
	bulk := "ABC123\tCarlos Rodríguez\t3001234567\nXYZ789\tMaría González\t3109876543"

	rows, problems := ParseBulkVehicles(bulk)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Plate != "ABC123" || rows[0].DriverName != "Carlos Rodríguez" || rows[0].DriverPhone != "3001234567" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestParseBulkVehicles_Problems(t *testing.T) {
	bulk := "AB123\tCarlos\t3001234567\n" + // bad plate
		"ABC123\tCarlos\n" + // missing phone column
		"DEF456\tMaría\t300123\n" + // bad phone
		"GHI789\tLuis\t3001112233\n" +
		"GHI789\tLuis\t3001112233" // duplicate plate

	rows, problems := ParseBulkVehicles(bulk)
	if len(rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(rows))
	}
	if len(problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", len(problems), problems)
	}
}

func TestCampaignService_Create(t *testing.T) {
	ops := newStubOpRepo(activeOperation("op-1"))
	campaigns := newStubCampaignRepo()
	vehicles := newStubVehicleRepo()
	svc := NewCampaignService(campaigns, vehicles, ops, zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID:  "op-1",
		CampaignDate: "2024-06-15",
		Vehicles:     []ports.VehicleInput{{Plate: "AAA111", DriverName: "Pedro", DriverPhone: "3000000001"}},
		BulkLines:    "BBB222\tJuana\t3000000002",
	}

	campaign, err := svc.Create(context.Background(), in, "demo-manager")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if campaign.Status != domain.CampaignPending {
		t.Fatalf("new campaign must be pending, got %s", campaign.Status)
	}
	if len(campaign.Vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(campaign.Vehicles))
	}
	for _, v := range campaign.Vehicles {
		if v.Status != domain.VehicleUnmanaged {
			t.Fatalf("new vehicles must start unmanaged, got %s", v.Status)
		}
		if v.CampaignID != campaign.ID {
			t.Fatalf("vehicle not linked to campaign")
		}
	}
}

func TestCampaignService_Create_NoVehicles(t *testing.T) {
	svc := NewCampaignService(newStubCampaignRepo(), newStubVehicleRepo(), newStubOpRepo(activeOperation("op-1")), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateCampaignInput{OperationID: "op-1", CampaignDate: "2024-06-15"}, "demo-manager")
	var vde *VehicleDataError
	if !errors.As(err, &vde) {
		t.Fatalf("expected VehicleDataError, got %v", err)
	}
}

func TestCampaignService_Create_UnknownOperation(t *testing.T) {
	svc := NewCampaignService(newStubCampaignRepo(), newStubVehicleRepo(), newStubOpRepo(), zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID: "missing",
		Vehicles:    []ports.VehicleInput{{Plate: "AAA111", DriverName: "Pedro", DriverPhone: "3000000001"}},
	}
	if _, err := svc.Create(context.Background(), in, "demo-manager"); !errors.Is(err, domain.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestCampaignService_Create_BulkProblemsRejectBatch(t *testing.T) {
	svc := NewCampaignService(newStubCampaignRepo(), newStubVehicleRepo(), newStubOpRepo(activeOperation("op-1")), zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID: "op-1",
		BulkLines:   "bad-plate\tPedro\t3000000001",
	}
	_, err := svc.Create(context.Background(), in, "demo-manager")
	var vde *VehicleDataError
	if !errors.As(err, &vde) {
		t.Fatalf("expected VehicleDataError, got %v", err)
	}
	if len(vde.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", vde.Problems)
	}
}

func TestCampaignService_Create_FormVehiclesValidated(t *testing.T) {
	campaigns := newStubCampaignRepo()
	svc := NewCampaignService(campaigns, newStubVehicleRepo(), newStubOpRepo(activeOperation("op-1")), zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID:  "op-1",
		CampaignDate: "2024-06-15",
		Vehicles: []ports.VehicleInput{
			{Plate: "bad-plate!", DriverName: "Pedro", DriverPhone: "123"},
			{Plate: "AAA111", DriverName: "Juana", DriverPhone: "300"},
		},
	}
	_, err := svc.Create(context.Background(), in, "demo-manager")
	var vde *VehicleDataError
	if !errors.As(err, &vde) {
		t.Fatalf("expected VehicleDataError, got %v", err)
	}
	if len(vde.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", vde.Problems)
	}
	if len(campaigns.campaigns) != 0 {
		t.Fatalf("no campaign may persist on a rejected batch")
	}
}

func TestCampaignService_Create_DuplicateAcrossFormAndBulk(t *testing.T) {
	svc := NewCampaignService(newStubCampaignRepo(), newStubVehicleRepo(), newStubOpRepo(activeOperation("op-1")), zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID:  "op-1",
		CampaignDate: "2024-06-15",
		Vehicles:     []ports.VehicleInput{{Plate: "AAA111", DriverName: "Pedro", DriverPhone: "3000000001"}},
		BulkLines:    "AAA111\tJuana\t3000000002",
	}
	_, err := svc.Create(context.Background(), in, "demo-manager")
	var vde *VehicleDataError
	if !errors.As(err, &vde) {
		t.Fatalf("expected VehicleDataError, got %v", err)
	}
}

func TestCampaignService_Create_VehicleInsertFailureRollsBack(t *testing.T) {
	campaigns := newStubCampaignRepo()
	vehicles := newStubVehicleRepo()
	vehicles.insertErr = errors.New("write failed")
	svc := NewCampaignService(campaigns, vehicles, newStubOpRepo(activeOperation("op-1")), zerolog.Nop())

	in := ports.CreateCampaignInput{
		OperationID:  "op-1",
		CampaignDate: "2024-06-15",
		Vehicles:     []ports.VehicleInput{{Plate: "AAA111", DriverName: "Pedro", DriverPhone: "3000000001"}},
	}
	if _, err := svc.Create(context.Background(), in, "demo-manager"); err == nil {
		t.Fatalf("expected the vehicle insert failure to surface")
	}
	if len(campaigns.campaigns) != 0 {
		t.Fatalf("campaign must be rolled back when its vehicles fail to persist")
	}
}

func TestCampaignService_ChangeStatus(t *testing.T) {
	campaign := &domain.Campaign{ID: "camp-1", OperationID: "op-1", Status: domain.CampaignPending}
	campaigns := newStubCampaignRepo(campaign)
	svc := NewCampaignService(campaigns, newStubVehicleRepo(), newStubOpRepo(), zerolog.Nop())

	if err := svc.ChangeStatus(context.Background(), "camp-1", domain.CampaignCompleted); err != nil {
		t.Fatalf("pending -> completed failed: %v", err)
	}
	if campaigns.campaigns["camp-1"].CompletedAt == nil {
		t.Fatalf("completed_at not stamped")
	}

	if err := svc.ChangeStatus(context.Background(), "camp-1", domain.CampaignPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed -> pending must be rejected, got %v", err)
	}

	if err := svc.ChangeStatus(context.Background(), "camp-1", domain.CampaignClosed); err != nil {
		t.Fatalf("completed -> closed failed: %v", err)
	}
	if err := svc.ChangeStatus(context.Background(), "camp-1", domain.CampaignCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("closed campaigns must be terminal, got %v", err)
	}
}

func TestCampaignService_Stats(t *testing.T) {
	vehicles := newStubVehicleRepo(
		&domain.CampaignVehicle{ID: "v1", CampaignID: "camp-1", Status: domain.VehicleUnmanaged},
		&domain.CampaignVehicle{ID: "v2", CampaignID: "camp-1", Status: domain.VehicleManaged},
		&domain.CampaignVehicle{ID: "v3", CampaignID: "camp-1", Status: domain.VehicleInterested},
		&domain.CampaignVehicle{ID: "v4", CampaignID: "camp-1", Status: domain.VehicleInterestedLater},
		&domain.CampaignVehicle{ID: "v5", CampaignID: "other", Status: domain.VehicleUnmanaged},
	)
	svc := NewCampaignService(newStubCampaignRepo(), vehicles, newStubOpRepo(), zerolog.Nop())

	stats, err := svc.Stats(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 4 || stats.Unmanaged != 1 || stats.Managed != 3 || stats.Interested != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// Package designer implements the custom mix composition state machine:
// one in-progress draft per session, driven by user actions, validated
// before every mutation.
package designer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mix-service/internal/catalog"
	"mix-service/internal/mix"
	"mix-service/internal/mode"
	"mix-service/internal/models"
	"mix-service/internal/nutrition"
	"mix-service/internal/util"

	"go.uber.org/zap"
)

// SavedMixStore persists named mixes.
type SavedMixStore interface {
	List(ctx context.Context) ([]models.SavedMix, error)
	Append(ctx context.Context, mix models.SavedMix) error
}

// OrderIntake accepts a finalized mix draft. The designer's job ends at
// producing the draft; order feedback belongs to the intake side.
type OrderIntake interface {
	AcceptOrder(ctx context.Context, draft models.OrderDraft) error
}

// Designer owns one MixDraft for the duration of an editing session.
// All mutating operations run to completion under the session lock, so
// no two of them interleave on the same draft.
type Designer struct {
	mu      sync.Mutex
	catalog *catalog.Snapshot
	saved   SavedMixStore
	intake  OrderIntake
	mode    mode.Mode
	logger  *zap.Logger

	draft   models.MixDraft
	editing int
	pending *intent
}

// New creates a designer with an empty draft. The catalog snapshot and
// view mode are captured at session start; mode changes arrive through
// SetMode.
func New(cat *catalog.Snapshot, saved SavedMixStore, intake OrderIntake, m mode.Mode) *Designer {
	return &Designer{
		catalog: cat,
		saved:   saved,
		intake:  intake,
		mode:    m,
		logger:  util.GetLogger(),
		draft:   models.MixDraft{Components: []models.MixComponent{}},
		editing: -1,
	}
}

// SetMode applies an external view-mode change. It only alters which
// follow-up prompts are offered after saving.
func (d *Designer) SetMode(m mode.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = m
}

// Mode returns the current view mode.
func (d *Designer) Mode() mode.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SetName replaces the draft name. The raw value is kept as typed;
// validation happens at save time.
func (d *Designer) SetName(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		return ErrConfirmationPending
	}
	d.draft.Name = name
	return nil
}

// View is the presentation projection of the draft. Money values are
// rounded here and nowhere else.
type View struct {
	Name       string                    `json:"name"`
	Components []models.MixComponent     `json:"components"`
	TotalPrice float64                   `json:"total_price"`
	Nutrition  models.AggregateNutrition `json:"nutrition"`
	Mode       mode.Mode                 `json:"mode"`
	Editing    int                       `json:"editing_index"`
}

// View returns a snapshot of the draft for display.
func (d *Designer) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	components := make([]models.MixComponent, len(d.draft.Components))
	copy(components, d.draft.Components)
	for i := range components {
		components[i].LineTotal = mix.Round2(components[i].LineTotal)
	}

	return View{
		Name:       d.draft.Name,
		Components: components,
		TotalPrice: mix.Round2(mix.TotalPrice(d.draft.Components, d.catalog)),
		Nutrition:  mix.Aggregate(d.draft.Components, nutrition.Lookup),
		Mode:       d.mode,
		Editing:    d.editing,
	}
}

// AddComponent validates the product and quantity inputs and appends a
// new line to the draft. Re-adding a product already in the mix is
// always rejected, never merged.
func (d *Designer) AddComponent(ctx context.Context, productCode, quantityInput string) (*models.Notification, error) {
	_, span := util.StartSpan(ctx, "Designer.AddComponent")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}

	if productCode == "" {
		return nil, d.reject(mix.ErrMissingProduct())
	}

	qty, ruleErr := mix.ValidateQuantity(quantityInput, productCode, d.catalog)
	if ruleErr != nil {
		return nil, d.reject(ruleErr)
	}

	for _, c := range d.draft.Components {
		if c.ProductCode == productCode {
			return nil, d.reject(mix.ErrDuplicateProduct())
		}
	}

	item, _ := d.catalog.Item(productCode)
	d.draft.Components = append(d.draft.Components, models.MixComponent{
		ProductCode: item.Code,
		ProductName: item.Name,
		Quantity:    qty,
		LineTotal:   item.RetailPrice * qty,
	})

	util.ComponentsAddedTotal.Inc()
	d.logger.Info("Component added",
		zap.String("product_code", item.Code),
		zap.Float64("quantity", qty))

	return &models.Notification{
		Icon:    models.IconSuccess,
		Title:   "Producto agregado",
		Text:    fmt.Sprintf("%s agregado a la mezcla", item.Name),
		TimerMS: 1500,
	}, nil
}

// RemoveComponent prepares the destructive-action gate for removing a
// line. Nothing mutates until the returned intent is confirmed.
func (d *Designer) RemoveComponent(ctx context.Context, index int) (*models.ConfirmRequest, error) {
	_, span := util.StartSpan(ctx, "Designer.RemoveComponent")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}
	if index < 0 || index >= len(d.draft.Components) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	component := d.draft.Components[index]
	return d.prepare(intentRemove, models.Notification{
		Icon:              models.IconWarning,
		Title:             "¿Eliminar producto?",
		Text:              fmt.Sprintf("¿Estás seguro de eliminar %s de la mezcla?", component.ProductName),
		ConfirmButtonText: "Sí, eliminar",
		CancelButtonText:  "Cancelar",
	}, func(ctx context.Context) (*models.Notification, error) {
		if index >= len(d.draft.Components) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		d.draft.Components = append(d.draft.Components[:index], d.draft.Components[index+1:]...)
		if d.editing == index {
			d.editing = -1
		}
		util.ComponentsRemovedTotal.Inc()
		return &models.Notification{
			Icon:    models.IconSuccess,
			Title:   "Producto eliminado",
			Text:    "El producto ha sido eliminado de la mezcla",
			TimerMS: 1500,
		}, nil
	}), nil
}

// BeginEditQuantity enters the quantity-edit sub-state for one line.
func (d *Designer) BeginEditQuantity(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return ErrConfirmationPending
	}
	if index < 0 || index >= len(d.draft.Components) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	d.editing = index
	return nil
}

// CancelEditQuantity leaves the edit sub-state without changes.
func (d *Designer) CancelEditQuantity() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = -1
}

// EditRejection reports a failed quantity commit. The input field must
// be restored to the component's last valid quantity; this is the one
// place a typed value is deliberately discarded.
type EditRejection struct {
	Rule            *mix.RuleError `json:"rule"`
	RestoreQuantity float64        `json:"restore_quantity"`
}

// CommitEditQuantity re-validates the new quantity against the same
// component's product (stock check uses current catalog stock,
// independent of the old quantity) and replaces quantity and line total
// on success.
func (d *Designer) CommitEditQuantity(ctx context.Context, index int, quantityInput string) (*models.Notification, *EditRejection, error) {
	_, span := util.StartSpan(ctx, "Designer.CommitEditQuantity")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, nil, ErrConfirmationPending
	}
	if index < 0 || index >= len(d.draft.Components) {
		return nil, nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if d.editing != index {
		return nil, nil, fmt.Errorf("no quantity edit in progress for component %d", index)
	}

	component := d.draft.Components[index]
	qty, ruleErr := mix.ValidateQuantity(quantityInput, component.ProductCode, d.catalog)
	if ruleErr != nil {
		d.countRejection(ruleErr)
		return nil, &EditRejection{
			Rule:            ruleErr,
			RestoreQuantity: component.Quantity,
		}, nil
	}

	item, _ := d.catalog.Item(component.ProductCode)
	d.draft.Components[index].Quantity = qty
	d.draft.Components[index].LineTotal = item.RetailPrice * qty
	d.editing = -1

	util.QuantityEditsTotal.Inc()
	return &models.Notification{
		Icon:    models.IconSuccess,
		Title:   "Cantidad actualizada",
		Text:    "La cantidad ha sido actualizada correctamente",
		TimerMS: 1500,
	}, nil, nil
}

// SaveResult reports a successful save. In staff mode FollowUp carries
// the order-conversion prompt; in customer-facing mode Closing carries
// the informational message instead.
type SaveResult struct {
	Saved        models.SavedMix        `json:"saved"`
	Notification models.Notification    `json:"notification"`
	FollowUp     *models.ConfirmRequest `json:"follow_up,omitempty"`
	Closing      *models.Notification   `json:"closing,omitempty"`
}

// Save validates the draft and persists it as an immutable snapshot.
// Either the full state and persistence update succeeds, or nothing
// changes.
func (d *Designer) Save(ctx context.Context, name string) (*SaveResult, error) {
	ctx, span := util.StartSpan(ctx, "Designer.Save")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}

	if len(d.draft.Components) == 0 {
		return nil, d.reject(mix.ErrEmptyMix("guardar la mezcla"))
	}
	if ruleErr := mix.ValidateName(name); ruleErr != nil {
		return nil, d.reject(ruleErr)
	}

	existing, err := d.saved.List(ctx)
	if err != nil {
		return nil, d.systemErr("No se pudo guardar la mezcla. Por favor, inténtalo de nuevo.", err)
	}
	if ruleErr := mix.ValidateUniqueName(name, existing); ruleErr != nil {
		return nil, d.reject(ruleErr)
	}

	now := time.Now()
	snapshot := models.SavedMix{
		ID:         now.UnixMilli(),
		Name:       name,
		Components: copyComponents(d.draft.Components),
		TotalPrice: mix.TotalPrice(d.draft.Components, d.catalog),
		Nutrition:  mix.Aggregate(d.draft.Components, nutrition.Lookup),
		CreatedAt:  now,
	}

	start := time.Now()
	if err := d.saved.Append(ctx, snapshot); err != nil {
		return nil, d.systemErr("No se pudo guardar la mezcla. Por favor, inténtalo de nuevo.", err)
	}
	util.SavePersistLatency.Observe(time.Since(start).Seconds())

	d.draft.Name = name
	util.MixesSavedTotal.Inc()
	d.logger.Info("Mix saved",
		zap.Int64("mix_id", snapshot.ID),
		zap.String("name", snapshot.Name),
		zap.Int("components", len(snapshot.Components)))

	result := &SaveResult{
		Saved: snapshot,
		Notification: models.Notification{
			Icon:              models.IconSuccess,
			Title:             "¡Mezcla guardada!",
			Text:              fmt.Sprintf("La mezcla %q ha sido guardada correctamente", name),
			ConfirmButtonText: "Continuar",
		},
	}

	if d.mode == mode.Client {
		result.Closing = &models.Notification{
			Icon:              models.IconInfo,
			Title:             "¡Excelente elección!",
			Text:              "Tu mezcla personalizada ha sido guardada. ¡Esperamos que la disfrutes!",
			ConfirmButtonText: "Crear otra mezcla",
			TimerMS:           3000,
		}
		return result, nil
	}

	result.FollowUp = d.prepare(intentOrder, models.Notification{
		Icon:              models.IconQuestion,
		Title:             "¿Crear pedido?",
		Text:              "¿Deseas crear un pedido con esta mezcla?",
		ConfirmButtonText: "Sí, crear pedido",
		CancelButtonText:  "No, gracias",
	}, func(ctx context.Context) (*models.Notification, error) {
		return d.convertLocked(ctx)
	})
	return result, nil
}

// ConvertToOrder hands the current draft to order intake and resets the
// designer. The hand-off itself is silent; order feedback belongs to
// the intake collaborator.
func (d *Designer) ConvertToOrder(ctx context.Context) (*models.Notification, error) {
	ctx, span := util.StartSpan(ctx, "Designer.ConvertToOrder")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}
	return d.convertLocked(ctx)
}

// convertLocked runs the conversion with the session lock held. Also
// reached through the post-save prompt, where the empty check still
// applies.
func (d *Designer) convertLocked(ctx context.Context) (*models.Notification, error) {
	if len(d.draft.Components) == 0 {
		return nil, d.reject(mix.ErrEmptyMix("crear un pedido"))
	}

	name := d.draft.Name
	if name == "" {
		name = fmt.Sprintf("Mezcla personalizada %d", time.Now().UnixMilli())
	}

	draft := models.OrderDraft{
		Name:       name,
		Components: d.draft.Components,
		TotalPrice: mix.TotalPrice(d.draft.Components, d.catalog),
		Nutrition:  mix.Aggregate(d.draft.Components, nutrition.Lookup),
	}

	if err := d.intake.AcceptOrder(ctx, draft); err != nil {
		util.OrderDraftsFailedTotal.Inc()
		return nil, d.systemErr("No se pudo registrar el pedido. Por favor, inténtalo de nuevo.", err)
	}

	util.OrderDraftsPublishedTotal.Inc()
	d.logger.Info("Order draft handed to intake",
		zap.String("name", draft.Name),
		zap.Int("components", len(draft.Components)))

	d.resetLocked()
	return nil, nil
}

// Clear prepares the confirmation gate for resetting the draft.
func (d *Designer) Clear(ctx context.Context) (*models.ConfirmRequest, error) {
	_, span := util.StartSpan(ctx, "Designer.Clear")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}

	return d.prepare(intentClear, models.Notification{
		Icon:              models.IconQuestion,
		Title:             "¿Limpiar diseñador?",
		Text:              "Se limpiará el diseñador y volverás al estado inicial para crear una nueva mezcla personalizada",
		ConfirmButtonText: "Sí, limpiar",
		CancelButtonText:  "Cancelar",
	}, func(ctx context.Context) (*models.Notification, error) {
		d.resetLocked()
		return &models.Notification{
			Icon:    models.IconSuccess,
			Title:   "¡Diseñador limpio!",
			Text:    "Puedes comenzar a crear una nueva mezcla personalizada",
			TimerMS: 2000,
		}, nil
	}), nil
}

// LoadSavedMix hydrates the draft from a saved snapshot. Any unsaved
// in-progress draft is overwritten without warning; the draft and the
// saved snapshot are independent after the copy.
func (d *Designer) LoadSavedMix(ctx context.Context, mixID int64) (*models.Notification, error) {
	ctx, span := util.StartSpan(ctx, "Designer.LoadSavedMix")
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		return nil, ErrConfirmationPending
	}

	mixes, err := d.saved.List(ctx)
	if err != nil {
		return nil, d.systemErr("No se pudo cargar la mezcla. Por favor, inténtalo de nuevo.", err)
	}

	for _, m := range mixes {
		if m.ID == mixID {
			d.draft.Name = m.Name
			d.draft.Components = copyComponents(m.Components)
			d.editing = -1
			util.MixesLoadedTotal.Inc()
			return nil, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrMixNotFound, mixID)
}

// resetLocked returns the draft to the empty state.
func (d *Designer) resetLocked() {
	d.draft = models.MixDraft{Components: []models.MixComponent{}}
	d.editing = -1
}

// reject counts a validation failure and returns it unchanged.
func (d *Designer) reject(ruleErr *mix.RuleError) error {
	d.countRejection(ruleErr)
	return ruleErr
}

func (d *Designer) countRejection(ruleErr *mix.RuleError) {
	util.ValidationFailuresTotal.WithLabelValues(string(ruleErr.Code)).Inc()
	d.logger.Info("Operation rejected",
		zap.String("rule", string(ruleErr.Code)),
		zap.String("message", ruleErr.Message))
}

func (d *Designer) systemErr(text string, err error) error {
	d.logger.Error("Operation failed", zap.Error(err))
	return &SystemError{Text: text, Err: err}
}

func copyComponents(components []models.MixComponent) []models.MixComponent {
	out := make([]models.MixComponent, len(components))
	copy(out, components)
	return out
}

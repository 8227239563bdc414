// Package worksheet реализует модель редактируемого рабочего листа бюджетной
// таблицы: плоский рабочий набор версий строк, журнал накопленных изменений,
// каскадный выбор классификации с кэшами справочников и пакетное сохранение.
//
// Все мутации синхронны; сетевые вызовы — единственные точки ожидания.
// Методы безопасны при чередовании фиксации правок с завершением
// отправленного ранее сохранения.
package worksheet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kokolodziejska/zagrane/internal/apiclient"
)

var (
	ErrRowIndex        = errors.New("worksheet: row index out of range")
	ErrColumnIndex     = errors.New("worksheet: column index out of range")
	ErrSelectColumn    = errors.New("worksheet: column is select-driven, free text edit not allowed")
	ErrValidation      = errors.New("worksheet: working set has invalid cells")
	ErrNoPendingDelete = errors.New("worksheet: no delete pending")
)

type Worksheet struct {
	mu     sync.Mutex
	client *apiclient.Client

	tableID int64
	userID  *int64
	now     func() time.Time

	loaded  bool
	headers []string
	rows    []*BudgetRow

	// Журнал изменений: не больше одной записи на ключ идентичности строки.
	// ledgerOrder хранит порядок первого появления для детерминированной
	// сериализации batch-update.
	ledger      map[string]*apiclient.ChangeRecord
	ledgerOrder []string

	divisions  []apiclient.Division
	chapters   map[string][]apiclient.Chapter
	paragraphs map[string][]apiclient.Paragraph

	// Ключ строки, ожидающей подтверждения удаления; пустая строка — нет.
	pendingDelete string
}

func New(client *apiclient.Client, tableID int64) *Worksheet {
	return &Worksheet{
		client:     client,
		tableID:    tableID,
		now:        time.Now,
		ledger:     make(map[string]*apiclient.ChangeRecord),
		chapters:   make(map[string][]apiclient.Chapter),
		paragraphs: make(map[string][]apiclient.Paragraph),
	}
}

// SetUser задает идентификатор пользователя, которым штампуются изменения.
func (w *Worksheet) SetUser(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.userID = &id
}

// Load загружает заголовки, данные таблицы и справочник działów тремя
// независимыми запросами. Каждый сбой деградирует до пустого значения;
// возвращаемая ошибка — сводка для журнала, состояние остается рабочим.
func (w *Worksheet) Load(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		hs   []string
		herr error
		td   *apiclient.TableData
		terr error
		divs []apiclient.Division
		derr error
	)

	wg.Add(3)
	go func() { defer wg.Done(); hs, herr = w.client.Headers(ctx) }()
	go func() { defer wg.Done(); td, terr = w.client.Table(ctx, w.tableID) }()
	go func() { defer wg.Done(); divs, derr = w.client.Divisions(ctx) }()
	wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()

	if herr != nil {
		w.headers = nil
	} else {
		w.headers = hs
	}
	if terr != nil {
		w.rows = []*BudgetRow{}
	} else {
		w.rows = flatten(td)
	}
	if derr != nil {
		w.divisions = nil
	} else {
		w.divisions = divs
	}
	w.loaded = true

	return errors.Join(herr, terr, derr)
}

// Loaded сообщает, завершилась ли начальная загрузка. Пустой рабочий набор
// после загрузки — валидное состояние, отличное от «еще грузимся».
func (w *Worksheet) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded
}

func (w *Worksheet) Headers() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.headers...)
}

func (w *Worksheet) RowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.rows)
}

// Row возвращает строку рабочего набора по индексу. Возвращенное значение —
// только для чтения; правки идут через EditCell и Select*.
func (w *Worksheet) Row(i int) (*BudgetRow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.rows) {
		return nil, ErrRowIndex
	}
	return w.rows[i], nil
}

// Display группирует рабочий набор в «текущая версия + история».
// Вычисление чистое: повторный вызов на том же наборе дает тот же результат.
func (w *Worksheet) Display() []DisplayRow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return groupRows(w.rows)
}

func (w *Worksheet) Divisions() []apiclient.Division {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]apiclient.Division(nil), w.divisions...)
}

// Chapters возвращает закэшированный список rozdziałów для działu.
func (w *Worksheet) Chapters(division string) ([]apiclient.Chapter, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	chs, ok := w.chapters[division]
	return chs, ok
}

// Paragraphs возвращает закэшированный список paragrafów для rozdziału.
func (w *Worksheet) Paragraphs(chapter string) ([]apiclient.Paragraph, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ps, ok := w.paragraphs[chapter]
	return ps, ok
}

// EditCell заменяет значение одной ячейки. Журнал не трогается: фиксация
// происходит отдельно, в CommitRow (уход из поля или Enter).
func (w *Worksheet) EditCell(rowIndex, col int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(w.rows) {
		return ErrRowIndex
	}
	if col < 0 || col >= len(w.rows[rowIndex].Values) {
		return ErrColumnIndex
	}
	if selectColumns[col] {
		return ErrSelectColumn
	}

	w.rows[rowIndex].Values[col] = value
	return nil
}

// CommitRow фиксирует текущее состояние строки в журнале. Повторная фиксация
// той же строки замещает прежнюю запись, а не добавляет новую.
func (w *Worksheet) CommitRow(rowIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(w.rows) {
		return ErrRowIndex
	}
	w.recordChangeLocked(w.rows[rowIndex], false)
	return nil
}

// SelectDivision устанавливает dział строки, сбрасывает зависимые поля
// (rozdział, paragraf, grupa wydatków), фиксирует изменение и подгружает
// список rozdziałów, если его еще нет в кэше.
func (w *Worksheet) SelectDivision(ctx context.Context, rowIndex int, value string) error {
	w.mu.Lock()
	if rowIndex < 0 || rowIndex >= len(w.rows) {
		w.mu.Unlock()
		return ErrRowIndex
	}
	row := w.rows[rowIndex]
	row.Values[ColDivision] = value
	row.Values[ColChapter] = ""
	row.Values[ColParagraph] = ""
	row.Values[ColExpenseGroup] = ""
	w.recordChangeLocked(row, false)
	_, cached := w.chapters[value]
	w.mu.Unlock()

	if cached {
		return nil
	}

	chs, err := w.client.Chapters(ctx, value)
	if err != nil {
		// Кэш не заполняем: повторный выбор действия повторит запрос
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Запоздавший ответ не должен затирать уже закэшированный список
	if _, ok := w.chapters[value]; !ok {
		w.chapters[value] = chs
	}
	return nil
}

// SelectChapter устанавливает rozdział строки, сбрасывает paragraf и grupę
// wydatków, фиксирует изменение и подгружает paragrafy при необходимости.
func (w *Worksheet) SelectChapter(ctx context.Context, rowIndex int, value string) error {
	w.mu.Lock()
	if rowIndex < 0 || rowIndex >= len(w.rows) {
		w.mu.Unlock()
		return ErrRowIndex
	}
	row := w.rows[rowIndex]
	row.Values[ColChapter] = value
	row.Values[ColParagraph] = ""
	row.Values[ColExpenseGroup] = ""
	w.recordChangeLocked(row, false)
	_, cached := w.paragraphs[value]
	w.mu.Unlock()

	if cached {
		return nil
	}

	ps, err := w.client.Paragraphs(ctx, value)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.paragraphs[value]; !ok {
		w.paragraphs[value] = ps
	}
	return nil
}

// SelectParagraph устанавливает paragraf и выводит grupę wydatków из уже
// загруженного списка paragrafów текущего rozdziału. Дополнительных запросов
// нет; если paragraf в кэше не найден, grupa остается пустой.
func (w *Worksheet) SelectParagraph(rowIndex int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(w.rows) {
		return ErrRowIndex
	}
	row := w.rows[rowIndex]
	row.Values[ColParagraph] = value

	group := ""
	for _, p := range w.paragraphs[row.Values[ColChapter]] {
		if p.Value == value && p.ExpenseGroup != nil {
			group = p.ExpenseGroup.Definition
			break
		}
	}
	row.Values[ColExpenseGroup] = group

	w.recordChangeLocked(row, false)
	return nil
}

// AddRow добавляет пустую строку без идентификатора бэкенда. Записи в журнале
// не появляется до первой фиксации. Возвращает индекс новой строки.
func (w *Worksheet) AddRow() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cols := len(w.headers)
	if cols == 0 {
		cols = ColumnCount
	}

	row := &BudgetRow{
		TableID: w.tableID,
		Values:  make([]string, cols),
		key:     identityKey(nil),
	}
	if len(w.rows) > 0 {
		row.TableID = w.rows[0].TableID
		row.DepartmentTableID = w.rows[0].DepartmentTableID
	}

	w.rows = append(w.rows, row)
	return len(w.rows) - 1
}

// RequestDelete открывает подтверждение удаления для строки.
func (w *Worksheet) RequestDelete(rowIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < 0 || rowIndex >= len(w.rows) {
		return ErrRowIndex
	}
	w.pendingDelete = w.rows[rowIndex].key
	return nil
}

// PendingDelete возвращает последнюю версию строки, ожидающей подтверждения.
func (w *Worksheet) PendingDelete() *BudgetRow {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pendingDelete == "" {
		return nil
	}
	return latestByKeyLocked(w.rows, w.pendingDelete)
}

// ConfirmDelete убирает из рабочего набора все версии строки и фиксирует
// удаление с последними известными значениями. Удаление никогда не
// сохранявшейся строки тоже попадает в журнал: бэкенд обязан терпеть
// удаление неизвестного идентификатора как no-op.
func (w *Worksheet) ConfirmDelete() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pendingDelete == "" {
		return ErrNoPendingDelete
	}
	key := w.pendingDelete
	w.pendingDelete = ""

	latest := latestByKeyLocked(w.rows, key)
	if latest == nil {
		return ErrNoPendingDelete
	}

	kept := w.rows[:0]
	for _, r := range w.rows {
		if r.key != key {
			kept = append(kept, r)
		}
	}
	w.rows = kept

	w.recordChangeLocked(latest, true)
	return nil
}

// CancelDelete отбрасывает ожидающее подтверждение без побочных эффектов.
func (w *Worksheet) CancelDelete() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pendingDelete = ""
}

// CanSave пересчитывается при каждом вызове: сохранение доступно, только
// когда каждая ячейка рабочего набора проходит формат своей колонки.
func (w *Worksheet) CanSave() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSaveLocked()
}

func (w *Worksheet) canSaveLocked() bool {
	for _, row := range w.rows {
		for col, v := range row.Values {
			if !CellValid(col, v) {
				return false
			}
		}
	}
	return true
}

// PendingChanges возвращает число накопленных записей журнала. Оно ограничено
// числом затронутых строк, а не числом сделанных правок.
func (w *Worksheet) PendingChanges() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ledger)
}

// Ledger возвращает снимок журнала в порядке первого появления записей.
func (w *Worksheet) Ledger() []apiclient.ChangeRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Save отправляет журнал одним batch-запросом. При успехе из журнала
// удаляются только отправленные записи, не замещенные более свежей фиксацией
// за время полета запроса; при ошибке журнал не меняется.
func (w *Worksheet) Save(ctx context.Context) error {
	w.mu.Lock()
	if !w.canSaveLocked() {
		w.mu.Unlock()
		return ErrValidation
	}
	records := w.snapshotLocked()
	sent := make(map[string]*apiclient.ChangeRecord, len(w.ledger))
	for key, rec := range w.ledger {
		sent[key] = rec
	}
	w.mu.Unlock()

	if len(records) == 0 {
		return nil
	}

	if err := w.client.BatchUpdate(ctx, records); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for key, rec := range sent {
		if w.ledger[key] == rec {
			delete(w.ledger, key)
		}
	}
	order := w.ledgerOrder[:0]
	for _, key := range w.ledgerOrder {
		if _, ok := w.ledger[key]; ok {
			order = append(order, key)
		}
	}
	w.ledgerOrder = order
	return nil
}

func (w *Worksheet) snapshotLocked() []apiclient.ChangeRecord {
	out := make([]apiclient.ChangeRecord, 0, len(w.ledgerOrder))
	for _, key := range w.ledgerOrder {
		if rec, ok := w.ledger[key]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// recordChangeLocked кладет в журнал полный снимок текущих значений строки.
// Повторная запись по тому же ключу замещает предыдущую. Время изменения
// штампуется моментом фиксации, не моментом правки.
func (w *Worksheet) recordChangeLocked(row *BudgetRow, deleted bool) {
	userID := row.LastUserID
	if w.userID != nil {
		userID = w.userID
	}

	rec := &apiclient.ChangeRecord{
		TableID:           row.TableID,
		DepartmentTableID: row.DepartmentTableID,
		RowID:             row.RowID,
		IsDeleted:         deleted,
		Values:            append([]string(nil), row.Values...),
		LastUserID:        userID,
		LastUpdate:        w.now().UTC().Format(time.RFC3339),
	}

	if _, ok := w.ledger[row.key]; !ok {
		w.ledgerOrder = append(w.ledgerOrder, row.key)
	}
	w.ledger[row.key] = rec
}

// latestByKeyLocked находит последнюю (по versionDate) версию строки по ключу.
func latestByKeyLocked(rows []*BudgetRow, key string) *BudgetRow {
	var latest *BudgetRow
	for _, r := range rows {
		if r.key != key {
			continue
		}
		if latest == nil {
			latest = r
			continue
		}
		if r.VersionDate != nil && (latest.VersionDate == nil || r.VersionDate.After(*latest.VersionDate)) {
			latest = r
		}
	}
	return latest
}

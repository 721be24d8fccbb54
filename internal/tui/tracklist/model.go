// Package tracklist содержит экран глав: раскрывающиеся секции с треками и поиск
package tracklist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/media"
	"github.com/hazadus/go-chapterplay/internal/player"
	"github.com/hazadus/go-chapterplay/internal/search"
	"github.com/hazadus/go-chapterplay/internal/section"
	tuiPlayer "github.com/hazadus/go-chapterplay/internal/tui/player"
	"github.com/hazadus/go-chapterplay/internal/tui/view"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).MarginLeft(2)
	sectionStyle      = lipgloss.NewStyle().Bold(true)
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	countStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	fileStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	emptyStateStyle   = lipgloss.NewStyle().Italic(true).MarginLeft(2).Foreground(lipgloss.Color("#aa8800"))
	statusStyle       = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("#ff0000"))
	helpStyle         = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("#666666"))
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
	searchPromptStyle = lipgloss.NewStyle().MarginLeft(2)
)

// Высота строк вокруг списка: заголовок, поиск, пустая строка, статус, справка
const chromeHeight = 6

// MediaEventMsg доставляет событие ресурса воспроизведения в цикл Update
type MediaEventMsg struct {
	Event media.Event
}

// PlayResultMsg доставляет результат запроса воспроизведения
type PlayResultMsg struct {
	Request *player.PlayRequest
	Err     error
}

type preloadDoneMsg struct {
	key string
	err error
}

// WaitForEvent ждет следующее событие из канала. Закрытый канал завершает ожидание.
func WaitForEvent(events <-chan media.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return MediaEventMsg{Event: ev}
	}
}

func awaitPlay(req *player.PlayRequest) tea.Cmd {
	return func() tea.Msg {
		return PlayResultMsg{Request: req, Err: <-req.Done}
	}
}

type rowKind int

const (
	sectionRow rowKind = iota
	trackRow
)

// row - строка списка, на которой может стоять курсор
type row struct {
	kind    rowKind
	chapter int
	key     string
}

// Options - настройки экрана
type Options struct {
	SeekStep float64 // Шаг перемотки стрелками, секунды
	Logger   *slog.Logger
}

// Model представляет модель экрана глав
type Model struct {
	chapters []catalog.Chapter
	byNumber map[int]catalog.Chapter
	coord    *player.Coordinator
	sections *section.Coordinator
	result   search.Result

	input    textinput.Model
	viewport viewport.Model
	widget   *tuiPlayer.Widget

	rows     []row
	cursor   int
	seekStep float64
	status   string
	quitting bool

	expandedQueue []int
	preloaded     map[string]bool
	logger        *slog.Logger
}

// NewModel создает модель экрана глав. Контроллеры треков уже должны быть в coord.
func NewModel(cat *catalog.Catalog, coord *player.Coordinator, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "поиск: 2-0"
	input.Prompt = "/ "
	input.CharLimit = 32

	m := &Model{
		chapters:  cat.Chapters(),
		byNumber:  make(map[int]catalog.Chapter),
		coord:     coord,
		sections:  section.NewCoordinator(opts.Logger),
		input:     input,
		viewport:  viewport.New(80, 20),
		widget:    tuiPlayer.NewWidget(),
		seekStep:  opts.SeekStep,
		preloaded: make(map[string]bool),
		logger:    opts.Logger,
	}
	for _, ch := range m.chapters {
		m.byNumber[ch.Number] = ch
	}

	m.sections.OnChange(func(chapter int, expanded bool) {
		if expanded {
			m.expandedQueue = append(m.expandedQueue, chapter)
		}
	})

	m.applyQuery()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// Result возвращает результат последнего применения поиска
func (m *Model) Result() search.Result {
	return m.result
}

// Sections возвращает координатор секций
func (m *Model) Sections() *section.Coordinator {
	return m.sections
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(10, msg.Width-8)
		m.widget.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		if m.input.Focused() {
			cmd = m.handleSearchKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}

	case MediaEventMsg:
		m.coord.Dispatch(msg.Event)

	case PlayResultMsg:
		m.coord.Resolve(msg.Request, msg.Err)
		if msg.Err != nil && !errors.Is(msg.Err, media.ErrClosed) {
			m.status = fmt.Sprintf("Не удалось запустить %s: %v", msg.Request.Key, msg.Err)
		}

	case preloadDoneMsg:
		if msg.err != nil {
			m.logger.Warn("ошибка предварительной загрузки", slog.String("track", msg.key), slog.Any("error", msg.err))
		}
		return m, nil
	}

	m.refresh()
	return m, tea.Batch(cmd, m.preloadCmd())
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.applyQuery()
		return nil

	case "enter", "down", "tab":
		m.input.Blur()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyQuery()
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit

	case "/":
		return m.input.Focus()

	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.applyQuery()
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		return m.activate()

	case "left", "h":
		m.seek(-m.seekStep)

	case "right", "l":
		m.seek(m.seekStep)
	}
	return nil
}

// activate раскрывает секцию или переключает воспроизведение трека под курсором
func (m *Model) activate() tea.Cmd {
	r, ok := m.current()
	if !ok {
		return nil
	}

	if r.kind == sectionRow {
		m.sections.Toggle(r.chapter)
		m.rebuildRows()
		return nil
	}

	req, err := m.coord.Toggle(r.key)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = ""
	if req == nil {
		return nil
	}
	return awaitPlay(req)
}

func (m *Model) seek(delta float64) {
	r, ok := m.current()
	if !ok || r.kind != trackRow {
		return
	}
	ctrl, ok := m.coord.Lookup(r.key)
	if !ok {
		return
	}
	if !ctrl.SeekBy(delta) {
		m.status = "Длительность трека еще неизвестна"
		return
	}
	m.status = ""
}

func (m *Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// applyQuery применяет текущую строку поиска к секциям и трекам
func (m *Model) applyQuery() {
	m.result = search.Apply(m.input.Value(), m.chapters, m.sections)
	m.rebuildRows()
}

// rebuildRows пересобирает строки под курсор, сохраняя его на той же строке, если она осталась
func (m *Model) rebuildRows() {
	prev, hadPrev := m.current()

	m.rows = m.rows[:0]
	for _, ch := range m.chapters {
		s, _ := m.result.Section(ch.Number)
		if !s.Visible {
			continue
		}
		m.rows = append(m.rows, row{kind: sectionRow, chapter: ch.Number})
		if !m.sections.Expanded(ch.Number) {
			continue
		}
		for _, t := range ch.Tracks {
			if m.result.TrackVisible(t.Key()) {
				m.rows = append(m.rows, row{kind: trackRow, chapter: ch.Number, key: t.Key()})
			}
		}
	}

	if hadPrev {
		for i, r := range m.rows {
			if r == prev {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = max(0, min(m.cursor, len(m.rows)-1))
}

// preloadCmd заранее узнает длительность треков в только что раскрытых секциях
func (m *Model) preloadCmd() tea.Cmd {
	var cmds []tea.Cmd
	for _, number := range m.expandedQueue {
		for _, t := range m.byNumber[number].Tracks {
			key := t.Key()
			if m.preloaded[key] {
				continue
			}
			m.preloaded[key] = true

			ctrl, ok := m.coord.Lookup(key)
			if !ok {
				continue
			}
			if load := ctrl.Preload(); load != nil {
				cmds = append(cmds, func() tea.Msg {
					return preloadDoneMsg{key: key, err: load()}
				})
			}
		}
	}
	m.expandedQueue = m.expandedQueue[:0]
	return tea.Batch(cmds...)
}

// tree строит дерево узлов экрана
func (m *Model) tree() *view.Node {
	var selected row
	if r, ok := m.current(); ok {
		selected = r
	}

	root := view.NewNode("")
	for _, ch := range m.chapters {
		expanded := m.sections.Expanded(ch.Number)
		s, _ := m.result.Section(ch.Number)

		sec := view.NewNode(m.sectionLabel(ch, expanded, selected == row{kind: sectionRow, chapter: ch.Number}))
		sec.SetVisible(s.Visible)

		for _, t := range ch.Tracks {
			isSelected := selected == row{kind: trackRow, chapter: ch.Number, key: t.Key()}
			node := view.NewNode(m.trackLabel(t, isSelected))
			node.SetVisible(expanded && m.result.TrackVisible(t.Key()))

			if ctrl, ok := m.coord.Lookup(t.Key()); ok {
				node.Append(view.NewNode(m.widget.View(ctrl.Display())))
			} else {
				node.Append(view.NewNode(countStyle.Render("недоступен")))
			}
			sec.Append(node)
		}
		root.Append(sec)
	}
	return root
}

func (m *Model) sectionLabel(ch catalog.Chapter, expanded, selected bool) string {
	arrow := "›"
	if expanded {
		arrow = "⌄"
	}
	title := sectionStyle.Render(ch.Title())
	if selected {
		title = selectedStyle.Render(ch.Title())
	}
	return fmt.Sprintf("%s %s   %s", arrow, title, countStyle.Render(ch.CountLabel()))
}

func (m *Model) trackLabel(t catalog.Track, selected bool) string {
	name := t.Name()
	if selected {
		name = selectedStyle.Render("> " + name)
	}
	return fmt.Sprintf("%s  %s", name, fileStyle.Render(t.FileLabel()))
}

// refresh перерисовывает список и прокручивает его к курсору
func (m *Model) refresh() {
	m.viewport.SetContent(m.tree().Render())

	// Секция занимает одну строку, трек две: название и плеер
	line := 0
	for _, r := range m.rows[:max(0, min(m.cursor, len(m.rows)))] {
		if r.kind == sectionRow {
			line++
		} else {
			line += 2
		}
	}
	height := 1
	if r, ok := m.current(); ok && r.kind == trackRow {
		height = 2
	}

	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line+height > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line + height - m.viewport.Height)
	}
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	out := titleStyle.Render("Главы") + "\n" + searchPromptStyle.Render(m.input.View()) + "\n\n"
	if m.result.ShowEmptyState {
		out += emptyStateStyle.Render(search.EmptyStateText) + "\n"
	} else {
		out += m.viewport.View() + "\n"
	}
	if m.status != "" {
		out += statusStyle.Render(m.status) + "\n"
	}

	help := "↑/↓: выбор • Enter/пробел: открыть или играть • ←/→: перемотка • /: поиск • q: выход"
	if m.input.Focused() {
		help = "Enter: к списку • Esc: сбросить поиск"
	}
	return out + helpStyle.Render(help)
}

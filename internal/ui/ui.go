package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/watchlist/internal/models"
)

// Source supplies the data the TUI shows.
type Source interface {
	ListMovies(ctx context.Context) ([]*models.Movie, error)
	Owner(ctx context.Context) (*models.User, error)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	source    Source
	width     int
	height    int
	loaded    bool
	owner     *models.User
	movieList list.Model
	selected  *models.Movie
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model reading from source.
func NewModel(ctx context.Context, source Source) *Model {
	return &Model{
		ctx:       ctx,
		view:      MovieListView,
		source:    source,
		movieList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the watchlist.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movieList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		if msg.kind == MsgMoviesFetched {
			return m.handleMoviesFetched(msg.data.(moviesFetched))
		}
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleMoviesFetched(fetched moviesFetched) (tea.Model, tea.Cmd) {
	if fetched.err != nil {
		m.err = fetched.err
		return m, nil
	}

	m.err = nil
	m.loaded = true
	m.owner = fetched.owner

	items := make([]list.Item, len(fetched.movies))
	for i, movie := range fetched.movies {
		items[i] = movieItem{movie: movie}
	}
	cmd := m.movieList.SetItems(items)
	m.movieList.Title = m.title()
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}
	if !m.loaded {
		return styles.muted.Render("Loading watchlist...")
	}

	switch m.view {
	case MovieListView:
		return m.renderMovieList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.movieList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchMovies()
	case "enter":
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			m.selected = item.movie
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = MovieListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		owner, err := m.source.Owner(m.ctx)
		if err != nil {
			return moviesFetchedMsg(nil, nil, err)
		}
		movies, err := m.source.ListMovies(m.ctx)
		return moviesFetchedMsg(owner, movies, err)
	}
}

func (m *Model) title() string {
	if m.owner == nil {
		return "Watchlist"
	}
	return m.owner.Name() + "'s Watchlist"
}

func (m *Model) renderMovieList() string {
	if len(m.movieList.Items()) == 0 {
		title := styles.title.Render(m.title())
		empty := styles.empty.Render("No movies yet. Run forge or add some on the web.")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.reload, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, empty, helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.reload, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderDetail() string {
	movie := m.selected
	if movie == nil {
		return ""
	}

	title := styles.title.Render(movie.Title())
	info := fmt.Sprintf(
		"Year:    %s\nID:      %d\nAdded:   %s\nUpdated: %s\n\n%s",
		styles.year.Render(movie.Year()),
		movie.ID(),
		movie.CreatedAt().Local().Format(time.DateTime),
		movie.UpdatedAt().Local().Format(time.DateTime),
		styles.muted.Render(imdbSearchURL(movie.Title())),
	)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

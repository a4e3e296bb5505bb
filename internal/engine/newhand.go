package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/cardroom/trainer/internal/handid"
	"github.com/cardroom/trainer/internal/randutil"
	"github.com/cardroom/trainer/poker"
)

// NewHand posts blinds and antes, deals hole cards and returns the
// initial state for a hand. The optional scenario pins hole cards to
// seats (and optionally community cards); everything else is dealt
// from the residual deck shuffled with the configured seed, so
// scripted hands replay exactly.
//
// Convention for blinds and order of play, also used by ValidActions
// and tests: with three or more players the small blind sits one seat
// clockwise of the dealer and the big blind two; preflop action starts
// one seat after the big blind, postflop action with the first
// eligible seat after the dealer. Heads-up, the dealer posts the small
// blind and acts first preflop; the big blind acts first postflop.
func NewHand(cfg HandConfig, scenario *Scenario) (*GameState, error) {
	if cfg.Table.MaxSeats == 0 {
		cfg.Table.MaxSeats = MaxSeats
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	if err := checkScenario(cfg, scenario); err != nil {
		return nil, err
	}

	rng := randutil.New(cfg.Seed)

	players := make([]Player, len(cfg.Players))
	startChips := 0
	for i, sc := range cfg.Players {
		players[i] = Player{
			ID:     sc.ID,
			Name:   sc.Name,
			Seat:   sc.Seat,
			Stack:  sc.Stack,
			Status: Active,
		}
		startChips += sc.Stack
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })

	handID := cfg.ID
	if handID == "" {
		// The ID's timestamp half derives from the seed rather than the
		// wall clock, so the same seed always replays to the same ID.
		clock := func() time.Time {
			return time.UnixMilli(cfg.Seed & 0x7FFFFFFFFFFF)
		}
		handID = handid.NewGenerator(rng, clock).Generate()
	}

	g := &GameState{
		HandID:     handID,
		HandNo:     1,
		Players:    players,
		Street:     Preflop,
		CurrentBet: cfg.Table.BigBlind,
		MinRaise:   cfg.Table.BigBlind,
		ActionSeat: -1,
		Dealer:     cfg.Dealer,
		Table:      cfg.Table,
		Seed:       cfg.Seed,
		startChips: startChips,
	}
	g.rebuildSeatIndex()

	var reserved []poker.Card
	if scenario != nil {
		for _, cards := range scenario.HoleCards {
			reserved = append(reserved, cards...)
		}
		reserved = append(reserved, scenario.Board...)
		g.scriptedBoard = append([]poker.Card(nil), scenario.Board...)
	}
	deck := poker.NewDeckWithout(rng, reserved...)

	g.postAntes()
	g.postBlinds()
	g.dealHoleCards(deck, scenario)
	g.deck = deck.Undealt()

	_, bbSeat := g.blindSeats()
	g.ActionSeat = g.nextSeat(bbSeat, (*Player).CanAct)

	// Everyone may already be all-in from blinds and antes; if so the
	// hand runs out immediately.
	if g.bettingComplete() {
		g.closeStreet()
	}

	if err := g.checkConservation(); err != nil {
		return nil, err
	}
	return g, nil
}

// blindSeats returns the small and big blind seats for the current
// dealer. Heads-up the dealer posts the small blind.
func (g *GameState) blindSeats() (sb, bb int) {
	occupied := func(*Player) bool { return true }
	if len(g.Players) == 2 {
		return g.Dealer, g.nextSeat(g.Dealer, occupied)
	}
	sb = g.nextSeat(g.Dealer, occupied)
	bb = g.nextSeat(sb, occupied)
	return sb, bb
}

// postAntes charges the ante to every seated player before the deal.
// Antes are swept straight into the pot rather than living in street
// bets.
func (g *GameState) postAntes() {
	if g.Table.Ante <= 0 {
		return
	}
	for i := range g.Players {
		p := &g.Players[i]
		ante := min(g.Table.Ante, p.Stack)
		p.Stack -= ante
		p.Committed += ante
		if p.Stack == 0 {
			p.Status = AllIn
		}
		g.record(EventPostAnte, p.Seat, ante, p.Status == AllIn)
	}
	g.Pots = buildPots(g.Players)
}

// postBlinds posts the small and big blind into the players' street
// bets, where they stay until the preflop betting round is swept.
func (g *GameState) postBlinds() {
	sbSeat, bbSeat := g.blindSeats()

	sb := g.PlayerBySeat(sbSeat)
	amount := min(g.Table.SmallBlind, sb.Stack)
	sb.Stack -= amount
	sb.Bet += amount
	if sb.Stack == 0 {
		sb.Status = AllIn
	}
	g.record(EventPostSmallBlind, sbSeat, amount, sb.Status == AllIn)

	bb := g.PlayerBySeat(bbSeat)
	amount = min(g.Table.BigBlind, bb.Stack)
	bb.Stack -= amount
	bb.Bet += amount
	if bb.Stack == 0 {
		bb.Status = AllIn
	}
	g.record(EventPostBigBlind, bbSeat, amount, bb.Status == AllIn)
}

// dealHoleCards gives each seated player two consecutive cards, in
// seat order starting one seat clockwise of the dealer. Scenario seats
// take their pinned cards instead of drawing from the deck.
func (g *GameState) dealHoleCards(deck *poker.Deck, scenario *Scenario) {
	seat := g.Dealer
	for range g.Players {
		seat = g.nextSeat(seat, func(*Player) bool { return true })
		p := g.PlayerBySeat(seat)
		if scenario != nil && len(scenario.HoleCards[seat]) == 2 {
			p.HoleCards = poker.NewHand(scenario.HoleCards[seat]...)
			continue
		}
		p.HoleCards = poker.NewHand(deck.Deal(2)...)
	}
}

// nextHand starts the following hand: busted players leave their
// seats, the dealer button moves to the next surviving seat clockwise,
// and the deck is reseeded deterministically from the session's root
// seed.
func nextHand(g *GameState) (*GameState, error) {
	if g.Street != Showdown {
		return g, reject(RejectHandInProgress, "next-hand is only legal from showdown")
	}

	survivors := make([]SeatConfig, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		if p.Stack > 0 {
			survivors = append(survivors, SeatConfig{ID: p.ID, Name: p.Name, Stack: p.Stack, Seat: p.Seat})
		}
	}
	if len(survivors) < 2 {
		return g, reject(RejectInsufficientPlayers, "%d players with chips remain, need at least 2", len(survivors))
	}

	dealer := -1
	for i := 1; i <= MaxSeats; i++ {
		seat := (g.Dealer + i) % MaxSeats
		for _, sc := range survivors {
			if sc.Seat == seat {
				dealer = seat
				break
			}
		}
		if dealer >= 0 {
			break
		}
	}

	next, err := NewHand(HandConfig{
		Players: survivors,
		Table:   g.Table,
		Dealer:  dealer,
		Seed:    randutil.Derive(g.Seed, uint64(g.HandNo)),
	}, nil)
	if err != nil {
		return g, fmt.Errorf("start next hand: %w", err)
	}
	next.HandNo = g.HandNo + 1
	return next, nil
}

func checkConfig(cfg HandConfig) error {
	if len(cfg.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(cfg.Players))
	}
	if cfg.Table.MaxSeats < 2 || cfg.Table.MaxSeats > MaxSeats {
		return fmt.Errorf("max seats must be 2-%d, got %d", MaxSeats, cfg.Table.MaxSeats)
	}
	if len(cfg.Players) > cfg.Table.MaxSeats {
		return fmt.Errorf("%d players exceed %d seats", len(cfg.Players), cfg.Table.MaxSeats)
	}
	if cfg.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", cfg.Table.SmallBlind)
	}
	if cfg.Table.BigBlind < cfg.Table.SmallBlind {
		return fmt.Errorf("big blind %d is below small blind %d", cfg.Table.BigBlind, cfg.Table.SmallBlind)
	}
	if cfg.Table.Ante < 0 {
		return fmt.Errorf("ante must be non-negative, got %d", cfg.Table.Ante)
	}

	seats := map[int]bool{}
	dealerSeated := false
	for _, sc := range cfg.Players {
		if sc.Seat < 0 || sc.Seat >= cfg.Table.MaxSeats {
			return fmt.Errorf("seat %d out of range 0-%d", sc.Seat, cfg.Table.MaxSeats-1)
		}
		if seats[sc.Seat] {
			return fmt.Errorf("seat %d occupied twice", sc.Seat)
		}
		seats[sc.Seat] = true
		if sc.Stack <= 0 {
			return fmt.Errorf("player %q needs a positive stack, got %d", sc.ID, sc.Stack)
		}
		if sc.Seat == cfg.Dealer {
			dealerSeated = true
		}
	}
	if !dealerSeated {
		return fmt.Errorf("dealer seat %d is not occupied", cfg.Dealer)
	}
	return nil
}

func checkScenario(cfg HandConfig, scenario *Scenario) error {
	if scenario == nil {
		return nil
	}
	seen := poker.Hand(0)
	claim := func(c poker.Card) error {
		if seen.Has(c) {
			return fmt.Errorf("card %s pinned twice in scenario", c)
		}
		seen = seen.Add(c)
		return nil
	}

	seated := map[int]bool{}
	for _, sc := range cfg.Players {
		seated[sc.Seat] = true
	}
	for seat, cards := range scenario.HoleCards {
		if !seated[seat] {
			return fmt.Errorf("scenario pins cards for empty seat %d", seat)
		}
		if len(cards) != 2 {
			return fmt.Errorf("seat %d needs exactly 2 pinned cards, got %d", seat, len(cards))
		}
		for _, c := range cards {
			if err := claim(c); err != nil {
				return err
			}
		}
	}
	if len(scenario.Board) > 5 {
		return fmt.Errorf("scenario pins %d board cards, maximum is 5", len(scenario.Board))
	}
	for _, c := range scenario.Board {
		if err := claim(c); err != nil {
			return err
		}
	}
	return nil
}

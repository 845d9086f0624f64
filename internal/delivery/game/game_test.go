package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/session"
)

// Проверка под -race: чтение состава игроков идёт под тем же мьютексом,
// что и подсадка оппонента в ожидающую партию.
func TestParticipantColorConcurrentWithJoin(t *testing.T) {
	lg := &liveGame{
		gameKey: "secret-key",
		session: session.New("creator", "", 9, 0, 6.5),
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			lg.participantColor("joiner")
		}
	}()
	go func() {
		defer wg.Done()
		lg.mu.Lock()
		lg.session.PlayerWhite = "joiner"
		lg.mu.Unlock()
	}()

	wg.Wait()
	assert.Equal(t, engine.White, lg.participantColor("joiner"))
	assert.Equal(t, engine.Black, lg.participantColor("creator"))
	assert.Equal(t, engine.Empty, lg.participantColor("stranger"))
}

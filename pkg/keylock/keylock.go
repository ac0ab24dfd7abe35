// Package keylock provee exclusión mutua por clave lógica: dos llamadas con la
// misma clave se serializan, claves distintas avanzan en paralelo.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock mantiene un mutex por clave mientras haya interesados en ella.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New construye un KeyLock vacío.
func New() *KeyLock {
	return &KeyLock{entries: make(map[string]*entry)}
}

// Lock bloquea la clave y devuelve la función que la libera.
func (k *KeyLock) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}

// Len devuelve cuántas claves tienen interesados en este momento.
func (k *KeyLock) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

package chat

import "time"

// Seed populates a store with the demo contacts and conversation history
// shown on first launch. There is no server behind the app, so this is the
// entire universe of counterparts.
func Seed(s *Store) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	s.AddContact(Contact{
		ID:              "neo",
		Name:            "Neo (AI Assistant)",
		Email:           "neo@neochat.ai",
		Avatar:          "neo.gif",
		About:           "Always online and ready to help.",
		LastMessage:     "Hello! I'm Neo. Welcome to the future.",
		LastMessageTime: now,
		UnreadCount:     1,
		Online:          true,
		AI:              true,
		HasStatus:       true,
		StatusImage:     "neo-status.jpg",
	})
	s.AddContact(Contact{
		ID:              "alice",
		Name:            "Alice Rivera",
		Email:           "alice.rivera@email.com",
		Avatar:          "alice.jpg",
		About:           "Busy 👩‍💻",
		LastMessage:     "Deal, see you then!",
		LastMessageTime: now.Add(-1 * time.Hour),
		Online:          false,
		HasStatus:       true,
		StatusImage:     "alice-status.jpg",
	})
	s.AddContact(Contact{
		ID:              "ben",
		Name:            "Ben Park",
		Email:           "ben.dev@tech.com",
		Avatar:          "ben.jpg",
		About:           "At the gym",
		LastMessage:     "Have you seen the new API?",
		LastMessageTime: now.Add(-2 * time.Hour),
		UnreadCount:     3,
		Online:          true,
	})
	s.AddContact(Contact{
		ID:              "cara",
		Name:            "Cara Nguyen",
		Email:           "cara.ux@design.com",
		Avatar:          "cara.jpg",
		About:           "Urgent calls only.",
		LastMessage:     "I'll send over the layout.",
		LastMessageTime: now.Add(-5 * time.Hour),
		Online:          true,
		HasStatus:       true,
		StatusImage:     "cara-status.jpg",
	})

	seedThread(s, "neo", []Message{
		{SenderID: "neo", Body: "System booting...", Kind: KindText, CreatedAt: yesterday, Status: StatusRead},
		{SenderID: "neo", Body: "Hello! I'm Neo. Welcome to the future.", Kind: KindText, CreatedAt: now, Status: StatusRead},
	})
	seedThread(s, "alice", []Message{
		{SenderID: "alice", Body: "Hey, I still need those photos.", Kind: KindText, CreatedAt: yesterday, Status: StatusRead},
		{SenderID: "alice", Body: "Hi, how are you?", Kind: KindText, CreatedAt: now.Add(-100 * time.Second), Status: StatusRead},
		{SenderID: SelfID, Body: "All good, and you?", Kind: KindText, CreatedAt: now.Add(-90 * time.Second), Status: StatusRead},
		{SenderID: "alice", Body: "Deal, see you then!", Kind: KindText, CreatedAt: now.Add(-80 * time.Second), Status: StatusRead},
	})
	seedThread(s, "ben", []Message{
		{SenderID: "ben", Body: "Have you seen the new API?", Kind: KindText, CreatedAt: now, Status: StatusDelivered},
	})
}

// seedThread installs a pre-built history, assigning IDs through the
// store's generator so they stay unique within the thread.
func seedThread(s *Store, contactID string, msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range msgs {
		msgs[i].ID = s.newID()
	}
	s.threads[contactID] = msgs
}

package models

type Message struct {
	Message string `json:"message"`
}

// Task is the placeholder record served by the tasks router.
type Task struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

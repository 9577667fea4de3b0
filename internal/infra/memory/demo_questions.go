package memory

import "github.com/KokserM/kazoot-quiz/internal/domain"

// DemoQuizzes returns the built-in question bank used when neither Postgres
// nor the generator is configured.
func DemoQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"90s Movies": {
			Topic:    "90s Movies",
			Language: "English",
			Questions: []domain.Question{
				{Prompt: "Which movie features the famous line 'Life is like a box of chocolates'?", Choices: []string{"Forrest Gump", "Titanic", "The Lion King", "Jurassic Park"}, CorrectIndex: 0},
				{Prompt: "In which 1990s movie did Leonardo DiCaprio NOT appear?", Choices: []string{"Romeo + Juliet", "Titanic", "The Matrix", "What's Eating Gilbert Grape"}, CorrectIndex: 2},
				{Prompt: "What was the highest-grossing film of the 1990s?", Choices: []string{"Jurassic Park", "Titanic", "The Lion King", "Home Alone"}, CorrectIndex: 1},
				{Prompt: "Which Disney movie featured the song 'A Whole New World'?", Choices: []string{"The Lion King", "Aladdin", "Beauty and the Beast", "The Little Mermaid"}, CorrectIndex: 1},
				{Prompt: "Who directed the movie 'Pulp Fiction' (1994)?", Choices: []string{"Steven Spielberg", "Martin Scorsese", "Quentin Tarantino", "Tim Burton"}, CorrectIndex: 2},
				{Prompt: "In 'The Sixth Sense', what does the boy see?", Choices: []string{"Aliens", "Dead people", "The future", "Ghosts"}, CorrectIndex: 1},
				{Prompt: "Which movie popularized the phrase 'Show me the money!'?", Choices: []string{"Jerry Maguire", "Wall Street", "Boiler Room", "The Wolf of Wall Street"}, CorrectIndex: 0},
				{Prompt: "What was the name of the ship in Titanic?", Choices: []string{"RMS Titanic", "HMS Titanic", "SS Titanic", "USS Titanic"}, CorrectIndex: 0},
				{Prompt: "Which actor played the Terminator in Terminator 2: Judgment Day?", Choices: []string{"Sylvester Stallone", "Arnold Schwarzenegger", "Bruce Willis", "Jean-Claude Van Damme"}, CorrectIndex: 1},
				{Prompt: "In 'Home Alone', where is the family going on vacation?", Choices: []string{"Hawaii", "Florida", "Paris", "New York"}, CorrectIndex: 2},
			},
		},
		"Space & Astronomy": {
			Topic:    "Space & Astronomy",
			Language: "English",
			Questions: []domain.Question{
				{Prompt: "What is the largest planet in our solar system?", Choices: []string{"Saturn", "Jupiter", "Neptune", "Uranus"}, CorrectIndex: 1},
				{Prompt: "How many moons does Earth have?", Choices: []string{"0", "1", "2", "3"}, CorrectIndex: 1},
				{Prompt: "What is the closest star to Earth?", Choices: []string{"Alpha Centauri", "Sirius", "The Sun", "Proxima Centauri"}, CorrectIndex: 2},
				{Prompt: "Which planet is known as the 'Red Planet'?", Choices: []string{"Venus", "Mars", "Mercury", "Jupiter"}, CorrectIndex: 1},
				{Prompt: "What is the name of the galaxy we live in?", Choices: []string{"Andromeda", "Milky Way", "Whirlpool", "Sombrero"}, CorrectIndex: 1},
				{Prompt: "How long does it take for light from the Sun to reach Earth?", Choices: []string{"8 minutes", "1 hour", "1 day", "1 second"}, CorrectIndex: 0},
				{Prompt: "What is the hottest planet in our solar system?", Choices: []string{"Mercury", "Venus", "Mars", "Jupiter"}, CorrectIndex: 1},
				{Prompt: "Which planet has the most moons?", Choices: []string{"Jupiter", "Saturn", "Neptune", "Uranus"}, CorrectIndex: 1},
				{Prompt: "What is a group of stars called?", Choices: []string{"Galaxy", "Constellation", "Nebula", "Solar System"}, CorrectIndex: 1},
				{Prompt: "What was the first artificial satellite launched into space?", Choices: []string{"Explorer 1", "Sputnik 1", "Vanguard 1", "Luna 1"}, CorrectIndex: 1},
			},
		},
		"Video Games": {
			Topic:    "Video Games",
			Language: "English",
			Questions: []domain.Question{
				{Prompt: "Which company created the Super Mario series?", Choices: []string{"Sony", "Nintendo", "Microsoft", "Sega"}, CorrectIndex: 1},
				{Prompt: "In which year was the original Pac-Man released?", Choices: []string{"1978", "1980", "1982", "1984"}, CorrectIndex: 1},
				{Prompt: "What is the best-selling video game of all time?", Choices: []string{"Tetris", "Minecraft", "Grand Theft Auto V", "Super Mario Bros."}, CorrectIndex: 1},
				{Prompt: "Which character is the main protagonist in The Legend of Zelda series?", Choices: []string{"Zelda", "Link", "Ganondorf", "Epona"}, CorrectIndex: 1},
				{Prompt: "What does 'RPG' stand for in gaming?", Choices: []string{"Real Player Game", "Role Playing Game", "Random Player Generator", "Rapid Pace Gaming"}, CorrectIndex: 1},
				{Prompt: "Which gaming console was released first?", Choices: []string{"PlayStation", "Nintendo 64", "Sega Saturn", "Atari 2600"}, CorrectIndex: 3},
				{Prompt: "In Pokémon, what type is Pikachu?", Choices: []string{"Fire", "Water", "Electric", "Grass"}, CorrectIndex: 2},
				{Prompt: "Which game popularized the battle royale genre?", Choices: []string{"Fortnite", "PUBG", "Apex Legends", "Call of Duty: Warzone"}, CorrectIndex: 1},
				{Prompt: "What is the maximum level in the original Pac-Man?", Choices: []string{"Level 255", "Level 256", "Level 300", "There is no maximum"}, CorrectIndex: 1},
				{Prompt: "Which company developed Minecraft?", Choices: []string{"Microsoft", "Mojang", "Epic Games", "Valve"}, CorrectIndex: 1},
			},
		},
	}
}

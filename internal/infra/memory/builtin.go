package memory

import (
	"github.com/olwandejj/Quizzify/internal/domain"
)

// BuiltinCategories returns the fixed catalog the app ships with: three
// categories of ten questions each. Deployments that want different content
// swap the loader for the SQLite or Postgres one.
func BuiltinCategories() map[string]domain.Category {
	return map[string]domain.Category{
		"Math Quiz": {
			Name: "Math Quiz",
			Questions: []domain.Question{
				{Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectOption: 1},
				{Text: "Solve: 10 * 2", Options: []string{"12", "20", "22"}, CorrectOption: 1},
				{Text: "What is 15 divided by 3?", Options: []string{"3", "4", "5"}, CorrectOption: 2},
				{Text: "What is the square root of 144?", Options: []string{"10", "11", "12", "14"}, CorrectOption: 2},
				{Text: "What is 7 times 8?", Options: []string{"54", "56", "58", "60"}, CorrectOption: 1},
				{Text: "What is 100 minus 37?", Options: []string{"61", "62", "63", "67"}, CorrectOption: 2},
				{Text: "What is 15% of 200?", Options: []string{"25", "30", "35", "40"}, CorrectOption: 1},
				{Text: "How many sides does a hexagon have?", Options: []string{"5", "6", "7", "8"}, CorrectOption: 1},
				{Text: "What is 3 cubed?", Options: []string{"6", "9", "27", "81"}, CorrectOption: 2},
				{Text: "What is the next prime number after 7?", Options: []string{"9", "11", "13", "15"}, CorrectOption: 1},
			},
		},
		"Science Quiz": {
			Name: "Science Quiz",
			Questions: []domain.Question{
				{Text: "Which planet is known as the Red Planet?", Options: []string{"Earth", "Venus", "Mars", "Jupiter"}, CorrectOption: 2},
				{Text: "What is the chemical symbol for water?", Options: []string{"H2O", "CO2", "O2", "NaCl"}, CorrectOption: 0},
				{Text: "How many legs does a spider have?", Options: []string{"6", "8", "10", "12"}, CorrectOption: 1},
				{Text: "What gas do plants absorb from the atmosphere?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"}, CorrectOption: 2},
				{Text: "What is the closest star to Earth?", Options: []string{"Proxima Centauri", "Sirius", "The Sun", "Polaris"}, CorrectOption: 2},
				{Text: "What is the freezing point of water in Celsius?", Options: []string{"-10", "0", "10", "32"}, CorrectOption: 1},
				{Text: "Which element has the chemical symbol O?", Options: []string{"Gold", "Osmium", "Oxygen", "Iron"}, CorrectOption: 2},
				{Text: "What is the hardest natural substance on Earth?", Options: []string{"Gold", "Iron", "Diamond", "Quartz"}, CorrectOption: 2},
				{Text: "What is the most abundant gas in Earth's atmosphere?", Options: []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Argon"}, CorrectOption: 2},
				{Text: "What force pulls objects toward the Earth?", Options: []string{"Magnetism", "Gravity", "Friction", "Inertia"}, CorrectOption: 1},
			},
		},
		"History Quiz": {
			Name: "History Quiz",
			Questions: []domain.Question{
				{Text: "In which year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, CorrectOption: 2},
				{Text: "Who painted the Mona Lisa?", Options: []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Claude Monet"}, CorrectOption: 2},
				{Text: "Who wrote Romeo and Juliet?", Options: []string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, CorrectOption: 1},
				{Text: "Which ancient wonder stood in Alexandria?", Options: []string{"The Hanging Gardens", "The Colossus", "The Lighthouse", "The Pyramids"}, CorrectOption: 2},
				{Text: "Who was the first president of the United States?", Options: []string{"Abraham Lincoln", "George Washington", "Thomas Jefferson", "John Adams"}, CorrectOption: 1},
				{Text: "The Great Wall is located in which country?", Options: []string{"Japan", "India", "China", "Mongolia"}, CorrectOption: 2},
				{Text: "Which empire built the Colosseum?", Options: []string{"The Greek", "The Ottoman", "The Roman", "The Persian"}, CorrectOption: 2},
				{Text: "In which year did the Titanic sink?", Options: []string{"1905", "1912", "1918", "1921"}, CorrectOption: 1},
				{Text: "Who reached the Americas in 1492?", Options: []string{"Ferdinand Magellan", "Christopher Columbus", "Amerigo Vespucci", "James Cook"}, CorrectOption: 1},
				{Text: "Which wall fell in 1989?", Options: []string{"Hadrian's Wall", "The Berlin Wall", "The Wailing Wall", "The Great Wall"}, CorrectOption: 1},
			},
		},
	}
}

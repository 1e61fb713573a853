package domain

import "fmt"

// Island groups the visitor-information posts staffed by one team.
type Island struct {
	Name  string
	Posts []string
}

// Locations is ordered so menus and reports list islands consistently.
type Locations []Island

// DefaultLocations is the post roster the office started with.
func DefaultLocations() Locations {
	return Locations{
		{Name: "백령도", Posts: []string{"두무진 안내소", "콩돌해안 안내소", "사곶해변 안내소", "용기포신항 안내소", "진촌리 현무암 안내소", "용틀임바위 안내소", "임시지질공원센터"}},
		{Name: "대청도", Posts: []string{"서풍받이 안내소", "옥죽동 해안사구 안내소", "농여해변 안내소", "선진동 선착장 안내소"}},
		{Name: "소청도", Posts: []string{"분바위 안내소", "탑동 선착장 안내소"}},
		{Name: "시청", Posts: []string{"인천시청", "지질공원팀 사무실"}},
	}
}

func (l Locations) Islands() []string {
	names := make([]string, 0, len(l))
	for _, is := range l {
		names = append(names, is.Name)
	}
	return names
}

func (l Locations) Posts(island string) ([]string, bool) {
	for _, is := range l {
		if is.Name == island {
			return is.Posts, true
		}
	}
	return nil, false
}

// IslandOf finds the island a post belongs to.
func (l Locations) IslandOf(post string) (string, bool) {
	for _, is := range l {
		for _, p := range is.Posts {
			if p == post {
				return is.Name, true
			}
		}
	}
	return "", false
}

// Validate checks that the island is known and, when post is non-empty, that
// the post belongs to it. An empty roster accepts anything.
func (l Locations) Validate(island, post string) error {
	if len(l) == 0 {
		return nil
	}
	posts, ok := l.Posts(island)
	if !ok {
		return fmt.Errorf("unknown island %q", island)
	}
	if post == "" {
		return nil
	}
	for _, p := range posts {
		if p == post {
			return nil
		}
	}
	return fmt.Errorf("post %q does not belong to %s", post, island)
}

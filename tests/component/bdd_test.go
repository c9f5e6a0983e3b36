//go:build component
// +build component

package component

func (s *ComponentTestSuite) TestSearchByGenreTag() {
	given, when, then := s.gherkin()

	given().
		aPublishedArtist().
		andAnApprovedProgrammer()

	when().
		theProgrammerSearchesByGenre("SLAM_POETRY")

	then().
		theSearchResultsContainTheArtist()
}

func (s *ComponentTestSuite) TestPendingProgrammerIsBlocked() {
	given, when, then := s.gherkin()

	given().
		aPublishedArtist().
		andAPendingProgrammer()

	when().
		theProgrammerSearchesByGenre("slam poetry")

	then().
		theRequestIsRejected()
}

func (s *ComponentTestSuite) TestFirstContactCreatesThread() {
	given, when, then := s.gherkin()

	given().
		aPublishedArtist().
		andAnApprovedProgrammer()

	when().
		theProgrammerSendsAFirstMessage()

	then().
		aConversationExistsWithTheArtistUnread().
		theArtistSeesTheMessage().
		aMessageNotificationIsEventuallyProduced()
}

func (s *ComponentTestSuite) TestRecommendationFlow() {
	given, when, then := s.gherkin()

	given().
		aPublishedArtist().
		andAnApprovedProgrammer()

	when().
		theProgrammerRecommendsTheArtist()

	then().
		theArtistProfileListsTheRecommendation().
		aRecommendationNotificationIsEventuallyProduced()
}
